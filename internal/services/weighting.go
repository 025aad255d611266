package services

import (
	"math"
	"strings"

	"github.com/cetprep/mocktest-service/internal/models"
)

// seniorShare is the fixed fraction of a subject's allocation drawn from the
// senior tier (STD_12); the junior tier (STD_11) gets the remainder.
const seniorShare = 0.8

// WeightingRule biases sampling toward a curriculum topic: any chapter whose
// name contains one of the Topics substrings (case-insensitive) feeds the
// rule's pool, from which Count questions are drawn.
type WeightingRule struct {
	Topics []string
	Count  int
}

// RuleProvider exposes the per-subject, per-tier weighting rules. The topic
// matching is substring-based against free-text chapter names, which is
// fragile; keeping it behind this interface lets a structured tagging scheme
// replace it without touching the sampling algorithm.
type RuleProvider interface {
	Rules(code models.SubjectCode, level models.StandardLevel) []WeightingRule
}

// SeniorTarget returns the senior-tier share of a subject allocation.
func SeniorTarget(total int) int {
	return int(math.Round(float64(total) * seniorShare))
}

// MatchesTopic reports whether a chapter name matches any of the rule's
// topic substrings, case-insensitively.
func MatchesTopic(chapterName string, topics []string) bool {
	name := strings.ToLower(chapterName)
	for _, t := range topics {
		if strings.Contains(name, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

type staticRuleProvider struct {
	rules map[models.SubjectCode]map[models.StandardLevel][]WeightingRule
}

// NewStaticRuleProvider returns the built-in MHT-CET syllabus weighting
// table.
func NewStaticRuleProvider() RuleProvider {
	return &staticRuleProvider{rules: chapterWeights}
}

func (p *staticRuleProvider) Rules(code models.SubjectCode, level models.StandardLevel) []WeightingRule {
	return p.rules[code][level]
}

// chapterWeights maps syllabus topics to target question counts per subject
// and tier. Topic strings are matched as substrings of chapter names.
var chapterWeights = map[models.SubjectCode]map[models.StandardLevel][]WeightingRule{
	models.SubjectPhysics: {
		models.Standard12: {
			{Topics: []string{"Kinetic Theory", "Radiation"}, Count: 6},
			{Topics: []string{"Oscillations", "Superposition"}, Count: 5},
			{Topics: []string{"Structure of Atoms", "Nuclei"}, Count: 4},
			{Topics: []string{"Rotational"}, Count: 4},
			{Topics: []string{"Electrostatics", "Current Electricity"}, Count: 5},
			{Topics: []string{"Magnetic", "Electromagnetic", "AC Circuits"}, Count: 4},
			{Topics: []string{"Semiconductors", "Wave Optics"}, Count: 3},
		},
		models.Standard11: {
			{Topics: []string{"Motion in a Plane", "Laws of Motion"}, Count: 2},
			{Topics: []string{"Thermal", "Sound", "Optics"}, Count: 3},
		},
	},
	models.SubjectChemistry: {
		models.Standard12: {
			{Topics: []string{"Thermodynamics"}, Count: 7},
			{Topics: []string{"Groups 16", "Transition", "Coordination"}, Count: 9},
			{Topics: []string{"Alcohols", "Phenols", "Ethers"}, Count: 4},
			{Topics: []string{"Halogen", "Aldehydes", "Ketones"}, Count: 4},
			{Topics: []string{"Solid State", "Solutions", "Electrochemistry"}, Count: 3},
		},
		models.Standard11: {
			{Topics: []string{"Basic Concepts", "Structure of Atom"}, Count: 2},
			{Topics: []string{"Redox", "Adsorption", "Hydrocarbons"}, Count: 3},
		},
	},
	models.SubjectMaths1: {
		models.Standard12: {
			{Topics: []string{"Trigonometric Functions"}, Count: 4},
			{Topics: []string{"Mathematical Logic", "Matrices", "Pair of Straight Lines"}, Count: 6},
			{Topics: []string{"Vectors", "Line and Plane"}, Count: 6},
		},
		models.Standard11: {
			{Topics: []string{"Trigonometry II", "Straight Line", "Circle"}, Count: 3},
		},
	},
	models.SubjectMaths2: {
		models.Standard12: {
			{Topics: []string{"Indefinite Integration", "Definite Integration"}, Count: 6},
			{Topics: []string{"Differentiation", "Applications of Derivatives"}, Count: 5},
			{Topics: []string{"Probability Distribution", "Binomial"}, Count: 4},
			{Topics: []string{"Differential Equations"}, Count: 3},
		},
		models.Standard11: {
			{Topics: []string{"Complex Numbers", "Permutations", "Functions", "Limits", "Continuity"}, Count: 3},
		},
	},
	models.SubjectBiology: {
		models.Standard12: {
			{Topics: []string{"Respiration", "Circulation", "Control"}, Count: 22},
			{Topics: []string{"Inheritance", "Molecular", "Biotechnology"}, Count: 20},
			{Topics: []string{"Plant Water", "Plant Growth"}, Count: 12},
			{Topics: []string{"Reproduction"}, Count: 12},
			{Topics: []string{"Organisms", "Ecosystem", "Biodiversity"}, Count: 8},
		},
		models.Standard11: {
			{Topics: []string{"Biomolecules", "Nutrition", "Respiration", "Excretion"}, Count: 20},
		},
	},
}
