package mario

import (
	"github.com/Murat2283plus/maliao/internal/config"
)

// placement positions an entity relative to the ground: x is the world
// column of its left edge and above the number of pixels between its top and
// the ground line.
type placement struct {
	x, above, w int
}

// Level 1-1. Every later level reuses it with faster enemies.
var (
	platformLayout = []placement{
		{8, 3, 4}, {15, 6, 3}, {25, 4, 5}, {40, 5, 6},
		{52, 8, 4}, {66, 4, 5}, {80, 6, 6}, {95, 5, 4},
	}
	brickLayout = []placement{
		{11, 7, 0}, {13, 7, 0}, {30, 7, 0}, {32, 7, 0}, {34, 7, 0},
		{58, 7, 0}, {60, 7, 0}, {86, 7, 0}, {88, 7, 0},
	}
	coinLayout = []placement{
		{9, 5, 0}, {11, 5, 0}, {16, 8, 0}, {27, 6, 0}, {29, 6, 0},
		{42, 7, 0}, {44, 7, 0}, {54, 10, 0}, {68, 6, 0}, {82, 8, 0},
		{84, 8, 0}, {97, 7, 0},
	}
	enemyLayout = []placement{
		{20, EnemySize, 0}, {35, EnemySize, 0}, {48, EnemySize, 0},
		{63, EnemySize, 0}, {75, EnemySize, 0}, {90, EnemySize, 0},
	}
	mushroomAt = placement{x: 41, above: 5 + PowerUpSize}
	flowerAt   = placement{x: 81, above: 6 + PowerUpSize}
)

// Level is the set of entities a world starts with.
type Level struct {
	Statics  []Entity
	Dynamics []Entity
}

// BuildLevel lays out the default level for the configured geometry.
// Entities that would not fit inside the world are left out.
func BuildLevel(cfg config.Config, enemySpeed float64) Level {
	gy := cfg.GroundY()
	limit := cfg.Game.WorldWidth - 6
	pal := cfg.Palette
	pts := cfg.Game.Points
	fits := func(p placement) bool {
		return p.x >= 0 && p.x+p.w <= limit && gy-p.above >= 0
	}

	var lvl Level
	for _, p := range platformLayout {
		if fits(p) {
			lvl.Statics = append(lvl.Statics,
				NewPlatform(float64(p.x), float64(gy-p.above), float64(p.w), pal.Platform.RGB()))
		}
	}
	for _, p := range brickLayout {
		if fits(p) {
			lvl.Statics = append(lvl.Statics, NewBrick(float64(p.x), float64(gy-p.above), pal.Brick.RGB()))
		}
	}
	if flagX := cfg.Game.WorldWidth - 4; flagX > 0 {
		lvl.Statics = append(lvl.Statics, NewFlag(float64(flagX), float64(gy), pal.Flag.RGB()))
	}

	for _, p := range coinLayout {
		if fits(p) {
			lvl.Dynamics = append(lvl.Dynamics, NewCoin(float64(p.x), float64(gy-p.above), pts.Coin, pal.Coin.RGB()))
		}
	}
	for _, p := range enemyLayout {
		if fits(p) {
			lvl.Dynamics = append(lvl.Dynamics,
				NewEnemy(float64(p.x), float64(gy-p.above), enemySpeed, pts.Stomp, pal.Enemy.RGB()))
		}
	}
	if fits(mushroomAt) {
		lvl.Dynamics = append(lvl.Dynamics, NewPowerUp(float64(mushroomAt.x), float64(gy-mushroomAt.above),
			Mushroom, pts.PowerUp, pal.Mushroom.RGB()))
	}
	if fits(flowerAt) {
		lvl.Dynamics = append(lvl.Dynamics, NewPowerUp(float64(flowerAt.x), float64(gy-flowerAt.above),
			Flower, pts.PowerUp, pal.Flower.RGB()))
	}
	return lvl
}
