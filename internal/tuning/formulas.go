package tuning

// SpeedLevels is how many frame rates the speed toggle cycles through.
const SpeedLevels = 3

// Mode is the part of the game loop a frame rate applies to.
type Mode int

const (
	ModeOther Mode = iota
	ModeBattle
	ModeField
)

const fallbackFPS = 30

// FrameRate returns the frame rate for a speed index. Unknown indexes use
// the normal rate and rates below 1 fall back to 30.
func (s Settings) FrameRate(index int) int {
	fps := s.NormalFPS
	switch index {
	case 1:
		fps = s.FastFPS
	case 2:
		fps = s.TurboFPS
	}
	if fps < 1 {
		return fallbackFPS
	}
	return fps
}

// FrameRateFor returns the frame rate for a game mode.
func (s Settings) FrameRateFor(mode Mode) int {
	switch mode {
	case ModeBattle:
		return s.FrameRate(s.BattleSpeed)
	case ModeField:
		return s.FrameRate(s.FieldSpeed)
	default:
		return fallbackFPS
	}
}

// NextSpeed advances the speed index of mode and reports whether anything
// changed. Speedrun mode and modes without a speed toggle change nothing.
func (s *Settings) NextSpeed(mode Mode) bool {
	if s.Speedrun {
		return false
	}
	switch mode {
	case ModeBattle:
		s.BattleSpeed = NextSpeedIndex(s.BattleSpeed)
	case ModeField:
		s.FieldSpeed = NextSpeedIndex(s.FieldSpeed)
	default:
		return false
	}
	return true
}

// NextSpeedIndex cycles 0, 1, 2, 0.
func NextSpeedIndex(index int) int {
	return (index + 1) % SpeedLevels
}

// TextSpeed maps the game's message speed to the configured one. The game
// uses 1 for English text and 2 for Japanese; other speeds pass through.
func (s Settings) TextSpeed(speed int) int {
	switch speed {
	case 1:
		return s.ENTextSpeed
	case 2:
		return s.JPTextSpeed
	default:
		return speed
	}
}

// Stat identifies what a growth event raised.
type Stat int

const (
	StatHP Stat = iota
	StatWP
	StatJP
	StatSkillLevel
)

// Growth caps.
const (
	MaxHP         = 999
	MaxWP         = 250
	MaxJP         = 255
	MaxSkillLevel = 50
)

// Grow returns the value after a growth event of stat from before to after,
// boosted by the fast growth settings. HP repeats the gain FastGrow more
// times; WP and JP add FastGrow; skill and spell levels add FastGrowSkill.
// Nothing is boosted while FastGrow is off or in speedrun mode.
func (s Settings) Grow(stat Stat, before, after int) int {
	if s.FastGrow <= 0 || s.Speedrun {
		return after
	}
	switch stat {
	case StatHP:
		return min(after+(after-before)*s.FastGrow, MaxHP)
	case StatWP:
		return min(after+s.FastGrow, MaxWP)
	case StatJP:
		return min(after+s.FastGrow, MaxJP)
	case StatSkillLevel:
		return min(after+s.FastGrowSkill, MaxSkillLevel)
	default:
		return after
	}
}

// SparkCounter returns the value the battle spark counter starts at. ok is
// false in speedrun mode, where the game's own value stands.
func (s Settings) SparkCounter() (counter int, ok bool) {
	if s.Speedrun {
		return 0, false
	}
	return int(-8 * (s.SparkRateMultiplier - 1)), true
}

// AcquireThreshold returns the roll (out of 256) a technique acquisition
// must not exceed. usedPoints is the technique point cost and wellSuited
// marks a technique the character has an affinity for.
func (s Settings) AcquireThreshold(usedPoints int, wellSuited bool) (threshold float64, ok bool) {
	if s.Speedrun {
		return 0, false
	}
	num := 30 - 7*usedPoints/4
	if wellSuited {
		num = num * 3 / 2
	}
	return float64(num) * s.AcquireRateMultiplier, true
}

// Acquires reports whether a roll in [0,256) acquires the technique. ok is
// false in speedrun mode.
func (s Settings) Acquires(usedPoints int, wellSuited bool, roll int) (acquired, ok bool) {
	threshold, ok := s.AcquireThreshold(usedPoints, wellSuited)
	if !ok {
		return false, false
	}
	return threshold >= float64(roll), true
}

// EnemyGrowthBonus is added to the enemy growth counter after each battle.
func (s Settings) EnemyGrowthBonus() int {
	if s.Speedrun {
		return 0
	}
	return s.FastGrowEnemy
}
