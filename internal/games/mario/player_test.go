package mario

import (
	"testing"

	"github.com/Murat2283plus/maliao/internal/config"
)

func newTestPlayer(lives int) (*Player, config.Palette) {
	cfg := config.Default()
	cfg.Game.Lives = lives
	return NewPlayer(cfg), cfg.Palette
}

func TestNewPlayerStandsOnGround(t *testing.T) {
	cfg := config.Default()
	p := NewPlayer(cfg)

	if p.State != Small {
		t.Errorf("State = %v, expected small", p.State)
	}
	if p.Bottom() != float64(cfg.GroundY()) {
		t.Errorf("Bottom() = %v, expected %d", p.Bottom(), cfg.GroundY())
	}
	if !p.OnGround || !p.Active {
		t.Error("new player should be active and on the ground")
	}
	if p.Lives != cfg.Game.Lives {
		t.Errorf("Lives = %d, expected %d", p.Lives, cfg.Game.Lives)
	}
}

func TestPowerUps(t *testing.T) {
	tests := []struct {
		name   string
		start  PowerState
		flower bool
		want   PowerState
		grew   bool
	}{
		{"mushroom small", Small, false, Big, true},
		{"mushroom big", Big, false, Big, false},
		{"mushroom fire", Fire, false, Fire, false},
		{"flower small", Small, true, Fire, true},
		{"flower big", Big, true, Fire, true},
		{"flower fire", Fire, true, Fire, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, pal := newTestPlayer(3)
			p.setState(tt.start, pal)
			bottom := p.Bottom()

			var got bool
			if tt.flower {
				got = p.FirePower(pal)
			} else {
				got = p.Grow(pal)
			}

			if got != tt.grew {
				t.Errorf("power-up returned %v, expected %v", got, tt.grew)
			}
			if p.State != tt.want {
				t.Errorf("State = %v, expected %v", p.State, tt.want)
			}
			if p.Bottom() != bottom {
				t.Errorf("feet moved from %v to %v", bottom, p.Bottom())
			}
			if p.H != tt.want.height() {
				t.Errorf("H = %v, expected %v", p.H, tt.want.height())
			}
		})
	}
}

func TestDamageChain(t *testing.T) {
	p, pal := newTestPlayer(3)
	p.FirePower(pal)

	steps := []struct {
		want  DamageResult
		state PowerState
		lives int
	}{
		{DamageShrunk, Big, 3},
		{DamageShrunk, Small, 3},
		{DamageLifeLost, Small, 2},
		{DamageLifeLost, Small, 1},
		{DamageDead, Small, 0},
	}

	for i, s := range steps {
		got := p.TakeDamage(pal)
		if got != s.want {
			t.Fatalf("hit %d: TakeDamage() = %v, expected %v", i, got, s.want)
		}
		if p.State != s.state || p.Lives != s.lives {
			t.Errorf("hit %d: state %v lives %d, expected %v and %d", i, p.State, p.Lives, s.state, s.lives)
		}
		if got == DamageDead {
			break
		}
		if !p.IsInvincible() {
			t.Errorf("hit %d: non-lethal damage should grant invincibility", i)
		}
		if again := p.TakeDamage(pal); again != DamageIgnored {
			t.Errorf("hit %d: damage while invincible = %v, expected ignored", i, again)
		}
		p.Invincible = 0
	}

	if !p.Dead() {
		t.Error("player with zero lives should be dead")
	}
	if p.TakeDamage(pal) != DamageIgnored {
		t.Error("a dead player cannot take more damage")
	}

	p.Respawn(pal)
	if p.Active {
		t.Error("Respawn() must not revive a player with no lives")
	}
}

func TestRespawnResetsPlayer(t *testing.T) {
	p, pal := newTestPlayer(3)
	p.FirePower(pal)
	p.X, p.Y = 50, 4
	p.VX, p.VY = 1, -2
	p.Invincible = 5
	p.OnGround = false

	p.Respawn(pal)

	if p.State != Small || p.H != SmallHeight {
		t.Errorf("State = %v H = %v, expected small with height %d", p.State, p.H, SmallHeight)
	}
	if p.X != p.spawnX || p.Bottom() != p.spawnY {
		t.Errorf("position = (%v, %v), expected feet at spawn (%v, %v)", p.X, p.Bottom(), p.spawnX, p.spawnY)
	}
	if p.VX != 0 || p.VY != 0 {
		t.Errorf("velocity = (%v, %v), expected zero", p.VX, p.VY)
	}
	if p.IsInvincible() {
		t.Error("Respawn() should clear invincibility")
	}
	if !p.OnGround {
		t.Error("respawned player should stand on the ground")
	}
}

func TestSteerFriction(t *testing.T) {
	p, _ := newTestPlayer(3)
	for range 50 {
		p.steer(1)
	}
	if p.VX <= 0 || p.VX > p.phys.MaxRunSpeed {
		t.Errorf("VX = %v, expected within (0, %v]", p.VX, p.phys.MaxRunSpeed)
	}
	if p.Dir != 1 {
		t.Errorf("Dir = %d, expected 1", p.Dir)
	}

	for range 50 {
		p.steer(0)
	}
	if p.VX != 0 {
		t.Errorf("VX = %v after coasting, expected 0", p.VX)
	}
}

func TestJumpLockout(t *testing.T) {
	p, _ := newTestPlayer(3)
	if !p.Jump() {
		t.Fatal("Jump() from the ground should succeed")
	}
	if p.VY >= 0 || p.OnGround {
		t.Errorf("after Jump() VY = %v OnGround = %v", p.VY, p.OnGround)
	}

	p.OnGround = true
	if p.Jump() {
		t.Error("Jump() during lockout should fail")
	}
	p.tickTimers(p.rules.JumpLockout)
	if !p.Jump() {
		t.Error("Jump() after the lockout expired should succeed")
	}
}
