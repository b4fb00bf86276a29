package parameter

// World layout in world pixels, origin top-left, y grows downward
const (
	// ScreenWidth is the width of one viewport; the next building spawns one viewport to the right
	ScreenWidth = 1280

	// ScreenHeight is the viewport height
	ScreenHeight = 720

	// GroundY is the top surface of the ground
	GroundY = 660

	// GroundThickness is the height of the static ground body
	GroundThickness = 40

	// BuildingX is the center of the building on screen
	BuildingX = 880

	// LaunchOriginX is the center of the launch pad
	LaunchOriginX = 180

	// LaunchOriginY is the height letters are pinned at on the launch pad
	LaunchOriginY = 550

	// PedestalHeight is the height of the indestructible support under the building
	PedestalHeight = 80

	// PedestalPadding is added to the pedestal width after scaling the building footprint
	PedestalPadding = 20

	// PedestalWidthScale widens the pedestal relative to the building footprint
	PedestalWidthScale = 1.5
)

// Letter geometry
const (
	LetterWidth  = 40
	LetterHeight = 50
	LetterGap    = 2

	// LetterDropStep is the horizontal spacing of drop points under the input box
	LetterDropStep = 20

	// LetterDropInset is the offset of the first drop point from the input box edge
	LetterDropInset = 8
)

// Defaults for the tunable block geometry
const (
	DefaultBlockWidth  = 35
	DefaultBlockHeight = 20
	DefaultInputX      = 90
	DefaultInputY      = 360
)
