package content

import "github.com/verte-zerg/funtext/internal/model"

// Corpus is the static content the sessions draw from.
type Corpus struct {
	Phrases   []string
	PosWords  []model.PosWord
	Objects   []model.CatalogObject
	Questions []model.Question
}

// DefaultCorpus returns a fresh copy of the built-in content.
func DefaultCorpus() Corpus {
	return Corpus{
		Phrases:   append([]string(nil), phrases...),
		PosWords:  append([]model.PosWord(nil), posWords...),
		Objects:   cloneObjects(objects),
		Questions: append([]model.Question(nil), questions...),
	}
}

func cloneObjects(in []model.CatalogObject) []model.CatalogObject {
	out := make([]model.CatalogObject, len(in))
	for i, o := range in {
		out[i] = model.CatalogObject{Name: o.Name, Tags: append([]string(nil), o.Tags...)}
	}
	return out
}

var phrases = []string{
	"the cat sleeps",
	"birds sing loudly",
	"we like apples",
	"the sun is warm",
	"my brother reads books",
	"the dog runs fast",
	"she draws a flower",
	"rain falls on roofs",
	"the baby laughs happily",
	"grandma bakes sweet bread",
	"the boy kicks a red ball",
	"my sister sings a funny song",
	"the little fish swims in the pond",
	"we walk to school every morning",
	"the old clock ticks on the wall",
	"a bright star shines at night",
	"the teacher writes on the board",
	"children play in the green park",
	"the hungry fox looks for food in the forest",
	"my friend and I build a tall sand castle",
	"the wind blows the yellow leaves across the road",
	"every summer we swim in the warm blue sea",
	"the clever girl solved the hard puzzle before lunch",
	"a small gray mouse hides under the kitchen table",
	"our class visited the museum of natural history yesterday",
	"the farmer feeds the cows and the chickens at dawn",
	"the kind doctor listened carefully to the sick little boy",
	"after dinner the whole family watched a funny movie together",
}

var posWords = []model.PosWord{
	{Text: "cat", PartOfSpeech: model.Noun},
	{Text: "fish", PartOfSpeech: model.Noun},
	{Text: "boy", PartOfSpeech: model.Noun},
	{Text: "girl", PartOfSpeech: model.Noun},
	{Text: "bird", PartOfSpeech: model.Noun},
	{Text: "dog", PartOfSpeech: model.Noun},
	{Text: "flower", PartOfSpeech: model.Noun},
	{Text: "ball", PartOfSpeech: model.Noun},

	{Text: "reads", PartOfSpeech: model.Verb},
	{Text: "runs", PartOfSpeech: model.Verb},
	{Text: "plays", PartOfSpeech: model.Verb},
	{Text: "sings", PartOfSpeech: model.Verb},
	{Text: "catches", PartOfSpeech: model.Verb},
	{Text: "draws", PartOfSpeech: model.Verb},

	{Text: "beautiful", PartOfSpeech: model.Adjective},
	{Text: "fast", PartOfSpeech: model.Adjective},
	{Text: "cheerful", PartOfSpeech: model.Adjective},
	{Text: "bright", PartOfSpeech: model.Adjective},
	{Text: "small", PartOfSpeech: model.Adjective},
	{Text: "big", PartOfSpeech: model.Adjective},
}

var objects = []model.CatalogObject{
	{Name: "apple", Tags: []string{"fruit", "red", "round", "sweet"}},
	{Name: "banana", Tags: []string{"fruit", "yellow", "sweet"}},
	{Name: "lemon", Tags: []string{"fruit", "yellow"}},
	{Name: "cherry", Tags: []string{"fruit", "red", "round", "sweet"}},
	{Name: "tomato", Tags: []string{"vegetable", "red", "round"}},
	{Name: "cucumber", Tags: []string{"vegetable", "green"}},
	{Name: "frog", Tags: []string{"animal", "green", "water"}},
	{Name: "fish", Tags: []string{"animal", "water"}},
	{Name: "duck", Tags: []string{"animal", "flies", "water"}},
	{Name: "sparrow", Tags: []string{"animal", "flies"}},
	{Name: "cat", Tags: []string{"animal"}},
	{Name: "airplane", Tags: []string{"flies", "metal"}},
	{Name: "kite", Tags: []string{"flies", "toy"}},
	{Name: "ball", Tags: []string{"round", "toy"}},
	{Name: "coin", Tags: []string{"round", "metal"}},
	{Name: "spoon", Tags: []string{"metal", "kitchen"}},
	{Name: "chair", Tags: []string{"wooden", "furniture"}},
	{Name: "table", Tags: []string{"wooden", "furniture"}},
	{Name: "pencil", Tags: []string{"wooden", "school"}},
	{Name: "candy", Tags: []string{"sweet"}},
	{Name: "honey", Tags: []string{"sweet", "yellow"}},
	{Name: "sun", Tags: []string{"round", "yellow"}},
	{Name: "leaf", Tags: []string{"green"}},
	{Name: "boat", Tags: []string{"water", "wooden"}},
}

var questions = []model.Question{
	{Text: "Pick every fruit", Tag: "fruit"},
	{Text: "Pick everything red", Tag: "red"},
	{Text: "Pick everything round", Tag: "round"},
	{Text: "Pick everything sweet", Tag: "sweet"},
	{Text: "Pick every animal", Tag: "animal"},
	{Text: "Pick everything that flies", Tag: "flies"},
	{Text: "Pick everything made of metal", Tag: "metal"},
	{Text: "Pick everything made of wood", Tag: "wooden"},
	{Text: "Pick everything yellow", Tag: "yellow"},
	{Text: "Pick everything green", Tag: "green"},
	{Text: "Pick everything found in water", Tag: "water"},
}
