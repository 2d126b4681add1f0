package constants

// PaletteSize is the number of category colors in the fixed palette.
// The palette colors themselves live in the render package; domain code only
// deals in indexes so category identity stays display-independent.
const PaletteSize = 12
