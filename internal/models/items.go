package models

// Item is a learnable subject type.
type Item string

const (
	Radical    Item = "radical"
	Kanji      Item = "kanji"
	Vocabulary Item = "vocabulary"
)

// Items is the closed, ordered set of known subject types.
var Items = [...]Item{Radical, Kanji, Vocabulary}

var itemLabels = map[Item]string{
	Radical:    "Radical 部首",
	Kanji:      "Kanji 漢字",
	Vocabulary: "Vocabulary 単語",
}

// Label is the display name used in breakdown tables and charts.
func (i Item) Label() string {
	if l, ok := itemLabels[i]; ok {
		return l
	}
	return string(i)
}

// ParseItem maps an upstream subject_type onto the known set.
func ParseItem(s string) (Item, bool) {
	switch Item(s) {
	case Radical, Kanji, Vocabulary:
		return Item(s), true
	}
	return "", false
}
