package cli

import "fmt"

const bashCompletions = `_strata() {
    local cur="${COMP_WORDS[COMP_CWORD]}"
    local commands="start stop report export completions migrate-csv help"
    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=( $(compgen -W "$commands" -- "$cur") )
    fi
}
complete -F _strata strata
`

const zshCompletions = `#compdef strata
_strata() {
    local -a commands
    commands=(
        'start:Start tracking a session'
        'stop:Stop the active session'
        'report:Print a per-category time report'
        'export:Export categories and sessions'
        'completions:Print shell completion script'
        'migrate-csv:Rewrite data files in the canonical schema'
    )
    _describe 'command' commands
}
_strata "$@"
`

const fishCompletions = `complete -c strata -f
complete -c strata -n "__fish_use_subcommand" -a start -d "Start tracking a session"
complete -c strata -n "__fish_use_subcommand" -a stop -d "Stop the active session"
complete -c strata -n "__fish_use_subcommand" -a report -d "Print a per-category time report"
complete -c strata -n "__fish_use_subcommand" -a export -d "Export categories and sessions"
complete -c strata -n "__fish_use_subcommand" -a completions -d "Print shell completion script"
complete -c strata -n "__fish_use_subcommand" -a migrate-csv -d "Rewrite data files in the canonical schema"
`

func runCompletions(env *Env, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("completions needs a shell argument: bash, zsh, or fish")
	}
	switch args[0] {
	case "bash":
		fmt.Fprint(env.Stdout, bashCompletions)
	case "zsh":
		fmt.Fprint(env.Stdout, zshCompletions)
	case "fish":
		fmt.Fprint(env.Stdout, fishCompletions)
	default:
		return fmt.Errorf("unsupported shell %q, use bash, zsh, or fish", args[0])
	}
	return nil
}
