package engine

import (
	"strings"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

type Attribute string

const (
	AttributeINT  Attribute = "INT"
	AttributeVIT  Attribute = "VIT"
	AttributeCHA  Attribute = "CHA"
	AttributeGOLD Attribute = "GOLD"
	AttributeWIL  Attribute = "WIL"
)

// AllAttributes lists the five attributes in display order.
var AllAttributes = []Attribute{AttributeINT, AttributeVIT, AttributeCHA, AttributeGOLD, AttributeWIL}

func (a Attribute) IsValid() bool {
	switch a {
	case AttributeINT, AttributeVIT, AttributeCHA, AttributeGOLD, AttributeWIL:
		return true
	default:
		return false
	}
}

// ParseAttribute parses user or payload input to an Attribute.
// Supported: int, vit, cha, gold, wil plus a few long-form aliases.
// Unrecognized input returns "" (caller decides whether to drop or reject).
func ParseAttribute(input string) Attribute {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "int", "intelligence":
		return AttributeINT
	case "vit", "vitality", "health":
		return AttributeVIT
	case "cha", "charisma":
		return AttributeCHA
	case "gold", "wealth":
		return AttributeGOLD
	case "wil", "will", "willpower":
		return AttributeWIL
	default:
		return ""
	}
}

// RewardOf reads the named attribute out of a fixed-shape reward record.
func RewardOf(r storage.Rewards, attr Attribute) int {
	switch attr {
	case AttributeINT:
		return r.INT
	case AttributeVIT:
		return r.VIT
	case AttributeCHA:
		return r.CHA
	case AttributeGOLD:
		return r.GOLD
	case AttributeWIL:
		return r.WIL
	default:
		return 0
	}
}

// SetReward writes the named attribute into a fixed-shape reward record.
func SetReward(r *storage.Rewards, attr Attribute, value int) {
	switch attr {
	case AttributeINT:
		r.INT = value
	case AttributeVIT:
		r.VIT = value
	case AttributeCHA:
		r.CHA = value
	case AttributeGOLD:
		r.GOLD = value
	case AttributeWIL:
		r.WIL = value
	}
}

// RewardsFromMap folds an open string-keyed reward map (as produced by an
// external payload) into the fixed shape. Unknown keys are dropped.
func RewardsFromMap(m map[string]int) storage.Rewards {
	var r storage.Rewards
	for k, v := range m {
		attr := ParseAttribute(k)
		if attr == "" {
			continue
		}
		SetReward(&r, attr, RewardOf(r, attr)+v)
	}
	return r
}
