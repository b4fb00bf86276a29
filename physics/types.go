package physics

import "math"

// BodyID identifies a body within a World, zero is never issued
type BodyID uint32

// ConstraintID identifies a constraint within a World, zero is never issued
type ConstraintID uint32

// Vec2 is a 2D vector in screen pixels, Y grows downward
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Category is a collision filter bitmask
// Two bodies collide only if each one's category is accepted by the other's mask
type Category uint32

const (
	CategoryNone    Category = 0
	CategoryDefault Category = 0x1
	CategoryLetter  Category = 0x2
	CategoryBlock   Category = 0x4
	CategoryGround  Category = 0x8
	CategoryRubble  Category = 0x10
)

// Standard masks per role
const (
	MaskLetter   = CategoryBlock | CategoryGround
	MaskBlock    = CategoryDefault | CategoryLetter | CategoryBlock | CategoryGround
	MaskPedestal = CategoryDefault | CategoryBlock | CategoryRubble
	MaskGround   = CategoryDefault | CategoryLetter | CategoryBlock | CategoryRubble
	MaskRubble   = CategoryDefault | CategoryGround | CategoryRubble
)

// Accepts reports whether two filters allow a collision
func Accepts(catA, maskA, catB, maskB Category) bool {
	return catA&maskB != 0 && catB&maskA != 0
}

// Kind tags what a body represents, for collision filtering and rendering
type Kind uint8

const (
	KindLetter Kind = iota
	KindBlock
	KindGround
	KindPedestal
	KindAnchor
)

var kindNames = [...]string{"letter", "block", "ground", "pedestal", "anchor"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// BodyDef describes an axis-aligned rectangular body, Position is the center
type BodyDef struct {
	Kind          Kind
	Position      Vec2
	Width         float64
	Height        float64
	Static        bool
	Density       float64
	Friction      float64
	Restitution   float64
	Category      Category
	Mask          Category
	FixedRotation bool
}

// ConstraintDef is a distance constraint between body centers
// Stiffness 1 is rigid, lower values pull the bodies together over several steps
type ConstraintDef struct {
	BodyA     BodyID
	BodyB     BodyID
	Length    float64
	Stiffness float64
}

// Pair is an unordered collision pair, A < B
type Pair struct {
	A, B BodyID
}

// NewPair orders two ids into a Pair
func NewPair(a, b BodyID) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Other returns the partner of id within the pair
func (p Pair) Other(id BodyID) (BodyID, bool) {
	switch id {
	case p.A:
		return p.B, true
	case p.B:
		return p.A, true
	}
	return 0, false
}
