// Package issues detects and categorizes comfort problems in review text.
package issues

import "github.com/headsetlab/comfortscan/internal/model"

// DefaultTaxonomy returns the built-in comfort-issue categories. The
// taxonomy is data: categories can be added or replaced from a YAML file
// without touching the classifier.
func DefaultTaxonomy() []model.IssueCategory {
	return []model.IssueCategory{
		{
			Key: "weight",
			Keywords: []string{
				"heavy", "weight", "weighs", "front heavy", "front-heavy",
				"head heavy", "too heavy", "lightweight", "light weight",
			},
			Patterns: []string{
				`(?:too|very|really|quite)\s+heavy`,
				`weight\s+(?:is|feels|seems)`,
				`front.heavy`,
			},
		},
		{
			Key: "pressure_points",
			Keywords: []string{
				"pressure point", "pressure points", "red marks", "marks on face",
				"digs in", "digging", "indent", "indentation",
			},
			Patterns: []string{
				`pressure\s+(?:point|on|around)`,
				`(?:hurts|pain)\s+(?:my|the)\s+(?:face|cheeks|nose)`,
				`leaves?\s+(?:marks?|indentation)`,
				`(?:sore|aching)\s+(?:face|head)`,
			},
		},
		{
			Key: "forehead_discomfort",
			Keywords: []string{
				"forehead pain", "forehead pressure", "forehead ache", "forehead sore",
			},
			Patterns: []string{
				`forehead\s+(?:pain|pressure|hurts|sore|ache)`,
				`(?:pressure|pain|hurts)\s+(?:on|my)\s+forehead`,
			},
		},
		{
			Key: "face_interface",
			Keywords: []string{
				"face cover", "face interface", "facial interface",
				"face cushion", "face pad", "face foam",
				"light leak", "light leaking", "nose gap",
			},
			Patterns: []string{
				`light\s+(?:leak|leaking|bleed)`,
				`nose\s+(?:gap|light)`,
			},
		},
		{
			Key: "strap_quality",
			Keywords: []string{
				"strap broke", "strap broken", "cheap strap", "flimsy",
				"broke after", "cracked", "snapped", "durability",
				"build quality", "quality issues",
			},
			Patterns: []string{
				`strap\s+(?:broke|broken|cracked|snapped)`,
				`(?:cheap|flimsy|poor)\s+(?:quality|material|build)`,
				`broke\s+after\s+\d+\s+(?:days?|weeks?|months?)`,
			},
		},
		{
			Key: "fit_adjustment",
			Keywords: []string{
				"doesn't fit", "too tight", "too loose", "hard to adjust",
				"slips", "sliding", "won't stay", "keeps moving", "unstable",
			},
			Patterns: []string{
				`(?:doesn't|does not|won't|will not)\s+fit`,
				`(?:too|very)\s+(?:tight|loose)`,
				`(?:hard|difficult)\s+to\s+adjust`,
				`(?:keeps?)\s+(?:slipping|sliding|moving)`,
			},
		},
		{
			Key: "heat_sweating",
			Keywords: []string{
				"sweaty", "sweat", "sweating", "ventilation",
				"breathable", "overheating",
			},
			Patterns: []string{
				`(?:too|very|gets)\s+hot`,
				`(?:sweat|sweaty|sweating)\s+(?:a lot|too much|badly)`,
				`(?:no|poor|bad)\s+ventilation`,
				`face\s+(?:gets?|is)\s+(?:hot|sweaty)`,
			},
		},
		{
			Key: "battery_weight",
			Keywords: []string{
				"battery weight", "battery adds", "counterbalance",
				"back heavy", "counterweight", "unbalanced",
			},
			Patterns: []string{
				`battery\s+(?:adds?|weight)`,
				`(?:counter)?balances?\s+(?:the|weight)`,
			},
		},
		{
			Key: "glasses_compatibility",
			Keywords: []string{
				"glasses", "spectacles", "eyeglasses", "prescription",
			},
			Patterns: []string{
				`(?:wear|use|fit)\s+(?:my\s+)?glasses`,
				`glasses\s+(?:don't|do not|won't)\s+fit`,
				`ipd\s+(?:range|adjustment|issue)`,
			},
		},
		{
			Key: "long_session",
			Keywords: []string{
				"long session", "extended use", "prolonged use", "marathon session",
			},
			Patterns: []string{
				`(?:after|for)\s+\d+\s+(?:hour|hr|minute|min)s?`,
				`long(?:er)?\s+(?:session|play|use|gaming)`,
				`extended\s+(?:session|use|play)`,
			},
		},
	}
}
