package model

const (
	LabelGlass   = "Glass"
	LabelPlastic = "Plastic"
)

var classLabels = [...]string{
	0: "Battery",
	1: "Biological",
	2: "Cardboard",
	3: "Clothes",
	4: LabelGlass,
	5: "Metal",
	6: "Paper",
	7: LabelPlastic,
	8: "Shoes",
	9: "Trash",
}

// NumClasses is the size of the output layer.
const NumClasses = len(classLabels)

// Labels returns the class table in index order.
func Labels() []string {
	out := make([]string, NumClasses)
	copy(out, classLabels[:])
	return out
}

// Label maps a class index to its name.
func Label(idx int) (string, bool) {
	if idx < 0 || idx >= NumClasses {
		return "", false
	}
	return classLabels[idx], true
}

// IsLabel reports whether s is one of the known classes.
func IsLabel(s string) bool {
	for _, l := range classLabels {
		if l == s {
			return true
		}
	}
	return false
}
