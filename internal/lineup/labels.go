package lineup

// Field position labels. These are the fine-grained defensive spots, not
// the coarse domain.Position capability tags.
const (
	LabelPitcher = "投"
	LabelCatcher = "捕"
	LabelFirst   = "一"
	LabelSecond  = "二"
	LabelThird   = "三"
	LabelShort   = "遊"
	LabelLeft    = "左"
	LabelCenter  = "中"
	LabelRight   = "右"
	LabelDH      = "DH"
	LabelUnset   = "-"
)

const (
	// BaseSlots is the number of defensive slots that can never be removed.
	BaseSlots = 9
	Innings   = 9
)

var FieldLabels = []string{
	LabelPitcher,
	LabelCatcher,
	LabelFirst,
	LabelSecond,
	LabelThird,
	LabelShort,
	LabelLeft,
	LabelCenter,
	LabelRight,
}

// InningLabels are the values accepted for a single inning cell.
var InningLabels = append(append([]string{}, FieldLabels...), LabelDH, LabelUnset)

func IsFieldLabel(label string) bool {
	for _, l := range FieldLabels {
		if l == label {
			return true
		}
	}
	return false
}

func IsInningLabel(label string) bool {
	for _, l := range InningLabels {
		if l == label {
			return true
		}
	}
	return false
}

// LabelCount reports how often a core field label appears.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
