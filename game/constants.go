package game

// Contents is the bitmask of content types reported by a point-contents query or stored on a brush.
type Contents uint32

const (
	ContentsSolid  Contents = 1
	ContentsWindow Contents = 2
	ContentsAux    Contents = 4
	ContentsLava   Contents = 8
	ContentsSlime  Contents = 16
	ContentsWater  Contents = 32
	ContentsMist   Contents = 64

	ContentsPlayerClip  Contents = 0x10000
	ContentsMonsterClip Contents = 0x20000

	ContentsCurrent0    Contents = 0x40000
	ContentsCurrent90   Contents = 0x80000
	ContentsCurrent180  Contents = 0x100000
	ContentsCurrent270  Contents = 0x200000
	ContentsCurrentUp   Contents = 0x400000
	ContentsCurrentDown Contents = 0x800000

	ContentsOrigin      Contents = 0x1000000
	ContentsMonster     Contents = 0x2000000
	ContentsDeadMonster Contents = 0x4000000
	ContentsDetail      Contents = 0x8000000
	ContentsTranslucent Contents = 0x10000000
	ContentsLadder      Contents = 0x20000000
)

const (
	// MaskWater is the set of contents counted as liquid by position categorization.
	MaskWater = ContentsWater | ContentsLava | ContentsSlime
	// MaskPlayerSolid is the set of contents that blocks a player's bounding box.
	MaskPlayerSolid = ContentsSolid | ContentsPlayerClip | ContentsWindow | ContentsMonster
	// MaskShot is the set of contents that stops a use or hitscan trace.
	MaskShot = ContentsSolid | ContentsMonster | ContentsWindow | ContentsDeadMonster
	// MaskAll matches every content type.
	MaskAll Contents = 0xFFFFFFFF
)

// Has returns true if any of the bits in o are set in c.
func (c Contents) Has(o Contents) bool {
	return c&o != 0
}

// SurfaceFlags describes the material properties of a hit surface.
type SurfaceFlags uint32

const (
	SurfaceLight   SurfaceFlags = 0x1
	SurfaceSlick   SurfaceFlags = 0x2
	SurfaceSky     SurfaceFlags = 0x4
	SurfaceWarp    SurfaceFlags = 0x8
	SurfaceTrans33 SurfaceFlags = 0x10
	SurfaceTrans66 SurfaceFlags = 0x20
	SurfaceFlowing SurfaceFlags = 0x40
	SurfaceNoDraw  SurfaceFlags = 0x80
)

// Buttons is the button bitmask carried by a frame command.
type Buttons uint8

const (
	ButtonAttack Buttons = 1
	ButtonUse    Buttons = 2
	ButtonCrouch Buttons = 4
	ButtonAny    Buttons = 128
)

// Has returns true if any of the buttons in o are held.
func (b Buttons) Has(o Buttons) bool {
	return b&o != 0
}

var contentsNames = map[string]Contents{
	"solid":        ContentsSolid,
	"window":       ContentsWindow,
	"aux":          ContentsAux,
	"lava":         ContentsLava,
	"slime":        ContentsSlime,
	"water":        ContentsWater,
	"mist":         ContentsMist,
	"playerclip":   ContentsPlayerClip,
	"monsterclip":  ContentsMonsterClip,
	"current_0":    ContentsCurrent0,
	"current_90":   ContentsCurrent90,
	"current_180":  ContentsCurrent180,
	"current_270":  ContentsCurrent270,
	"current_up":   ContentsCurrentUp,
	"current_down": ContentsCurrentDown,
	"origin":       ContentsOrigin,
	"monster":      ContentsMonster,
	"deadmonster":  ContentsDeadMonster,
	"detail":       ContentsDetail,
	"translucent":  ContentsTranslucent,
	"ladder":       ContentsLadder,
}

// ParseContents returns the content type with the name passed, such as "solid" or "water".
func ParseContents(name string) (Contents, bool) {
	c, ok := contentsNames[name]
	return c, ok
}

var surfaceNames = map[string]SurfaceFlags{
	"light":   SurfaceLight,
	"slick":   SurfaceSlick,
	"sky":     SurfaceSky,
	"warp":    SurfaceWarp,
	"trans33": SurfaceTrans33,
	"trans66": SurfaceTrans66,
	"flowing": SurfaceFlowing,
	"nodraw":  SurfaceNoDraw,
}

// ParseSurfaceFlag returns the surface flag with the name passed, such as "slick".
func ParseSurfaceFlag(name string) (SurfaceFlags, bool) {
	f, ok := surfaceNames[name]
	return f, ok
}
