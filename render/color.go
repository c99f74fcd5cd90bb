package render

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGold   = "\033[38;5;220m"
)

type palette struct {
	enabled bool
}

func (p palette) wrap(code, s string) string {
	if !p.enabled || s == "" {
		return s
	}
	return code + s + ansiReset
}

func (p palette) bold(s string) string { return p.wrap(ansiBold, s) }
func (p palette) dim(s string) string { return p.wrap(ansiDim, s) }
func (p palette) cyan(s string) string { return p.wrap(ansiCyan, s) }
func (p palette) red(s string) string { return p.wrap(ansiRed, s) }

func (p palette) tier(t Tier, s string) string {
	switch t {
	case TierGold:
		return p.wrap(ansiGold, s)
	case TierGreen:
		return p.wrap(ansiGreen, s)
	case TierYellow:
		return p.wrap(ansiYellow, s)
	default:
		return p.wrap(ansiRed, s)
	}
}
