package sim

import (
	"time"

	"dinorun/geom"
)

// PlayerState is the player's movement state
type PlayerState int

const (
	Running PlayerState = iota
	Jumping
	Crouching
)

func (s PlayerState) String() string {
	switch s {
	case Running:
		return "running"
	case Jumping:
		return "jumping"
	case Crouching:
		return "crouching"
	default:
		return "unknown"
	}
}

// Player is the runner. It keeps a fixed x and only moves vertically.
//
// The displayed pose follows a fixed precedence: an airborne player always
// shows the jump pose, whatever the crouch flag says. The crouch flag is still
// recorded mid-air, so releasing or holding crouch before touchdown decides the
// pose the player lands in.
type Player struct {
	*Entity

	running   []geom.Sprite
	crouching []geom.Sprite
	jumping   geom.Sprite

	groundY      float64
	floorY       float64 // bottom edge of the standing pose
	jumpVelocity float64
	gravity      float64
	animInterval time.Duration

	velocityY  float64
	airborne   bool
	crouchHeld bool
}

func newPlayer(id EntityID, cfg Config, sprites *spriteSet) *Player {
	running := sprites.frames(runFrames)
	p := &Player{
		running:      running,
		crouching:    sprites.frames(crouchFrames),
		jumping:      sprites.get(SpriteJump),
		groundY:      cfg.PlayerGroundY,
		floorY:       cfg.PlayerGroundY + float64(running[0].Size().Y),
		jumpVelocity: cfg.JumpVelocity,
		gravity:      cfg.Gravity,
		animInterval: cfg.AnimationInterval,
	}
	p.Entity = newEntity(id, KindPlayer, cfg.PlayerX, cfg.PlayerGroundY, running[0])
	p.frames = running
	return p
}

// State returns the current movement state
func (p *Player) State() PlayerState {
	switch {
	case p.airborne:
		return Jumping
	case p.crouchHeld:
		return Crouching
	default:
		return Running
	}
}

// VelocityY returns the current vertical velocity in px/frame
func (p *Player) VelocityY() float64 {
	return p.velocityY
}

// Jump starts a jump from the running state. Re-jumping mid-air and jumping
// out of a crouch are ignored.
func (p *Player) Jump() bool {
	if p.airborne || p.crouchHeld {
		return false
	}
	p.airborne = true
	p.velocityY = p.jumpVelocity
	return true
}

// Crouch sets or clears the crouch flag and applies the matching profile
// immediately when the player is on the ground.
func (p *Player) Crouch(active bool) {
	p.crouchHeld = active
	p.applyPose()
}

// Update advances animation and the jump arc by one frame.
func (p *Player) Update(now time.Duration) {
	if now-p.lastAnim > p.animInterval {
		p.lastAnim = now
		if !p.airborne {
			p.frame = (p.frame + 1) % len(p.running)
		}
	}

	if p.airborne {
		p.velocityY += p.gravity
		p.Y += p.velocityY
		if p.Y >= p.groundY {
			p.Y = p.groundY
			p.velocityY = 0
			p.airborne = false
		}
	}
	p.applyPose()
}

// applyPose selects the image for the current state and keeps the feet on the
// floor for ground poses.
func (p *Player) applyPose() {
	switch p.State() {
	case Jumping:
		p.setSprite(p.jumping)
	case Crouching:
		s := p.crouching[p.frame%len(p.crouching)]
		p.frames = p.crouching
		p.setSprite(s)
		p.Y = p.floorY - float64(s.Size().Y)
	default:
		s := p.running[p.frame%len(p.running)]
		p.frames = p.running
		p.setSprite(s)
		p.Y = p.groundY
	}
}
