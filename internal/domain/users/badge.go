package users

type Badge string

const (
	BadgeNone    Badge = "none"
	BadgeBronze  Badge = "bronze"
	BadgeSilver  Badge = "silver"
	BadgeGold    Badge = "gold"
	BadgeDiamond Badge = "diamond"
)

// thresholds in descending order of minimum review count
var badgeThresholds = []struct {
	min   int
	badge Badge
}{
	{51, BadgeDiamond},
	{26, BadgeGold},
	{11, BadgeSilver},
	{1, BadgeBronze},
}

// BadgeFor maps a review count to the reviewer's reputation badge.
func BadgeFor(reviewCount int) Badge {
	for _, t := range badgeThresholds {
		if reviewCount >= t.min {
			return t.badge
		}
	}
	return BadgeNone
}
