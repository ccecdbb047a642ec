// Package market provides job-market snapshots (demand, salary, trending
// skills) keyed by job title. Data is generated deterministically from an
// ordered rule table and cached with a TTL.
package market

import (
	"strings"
	"unicode"
)

type SalaryRange struct {
	Min    int `json:"min"`
	Max    int `json:"max"`
	Median int `json:"median"`
}

// JobMarketData is the snapshot for one job title.
type JobMarketData struct {
	Title          string      `json:"title"`
	DemandScore    float64     `json:"demand_score"`
	SalaryRange    SalaryRange `json:"salary_range"`
	TrendingSkills []string    `json:"trending_skills"`
	GrowthRate     float64     `json:"growth_rate"`
	MarketInsights []string    `json:"market_insights"`
}

func (d JobMarketData) clone() JobMarketData {
	d.TrendingSkills = append([]string(nil), d.TrendingSkills...)
	d.MarketInsights = append([]string(nil), d.MarketInsights...)
	return d
}

type titleWords struct {
	text  string
	words map[string]struct{}
}

func newTitleWords(title string) titleWords {
	t := titleWords{text: strings.ToLower(title), words: make(map[string]struct{})}
	for _, w := range strings.FieldsFunc(t.text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		t.words[w] = struct{}{}
	}
	return t
}

func (t titleWords) has(subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(t.text, s) {
			return true
		}
	}
	return false
}

func (t titleWords) word(w string) bool {
	_, ok := t.words[w]
	return ok
}

type marketRule struct {
	match func(t titleWords) bool
	data  JobMarketData
}

func devOrEng(t titleWords) bool { return t.has("engineer", "developer") }

// marketRules is evaluated top to bottom; the first match wins.
var marketRules = []marketRule{
	{
		match: func(t titleWords) bool { return t.has("ai engineer") || (t.word("ai") && t.has("engineer")) },
		data: JobMarketData{
			DemandScore:    9.2,
			SalaryRange:    SalaryRange{Min: 120000, Max: 200000, Median: 160000},
			TrendingSkills: []string{"python", "tensorflow", "pytorch", "mlops", "kubernetes", "aws", "nlp", "computer vision"},
			GrowthRate:     0.34,
			MarketInsights: []string{
				"AI roles have seen 34% growth in the past year",
				"High demand for ML engineers in healthcare and finance",
				"Remote work opportunities abundant in AI field",
				"Companies investing heavily in AI infrastructure",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("machine learning") || t.word("ml") },
		data: JobMarketData{
			DemandScore:    9.0,
			SalaryRange:    SalaryRange{Min: 115000, Max: 185000, Median: 150000},
			TrendingSkills: []string{"python", "scikit-learn", "tensorflow", "pytorch", "spark", "airflow", "kubeflow", "mlflow"},
			GrowthRate:     0.32,
			MarketInsights: []string{
				"ML engineering roles growing 32% year-over-year",
				"Production ML skills highly valued",
				"AutoML and MLOps tools in high demand",
				"Healthcare and finance sectors leading ML adoption",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("data scientist", "data science") },
		data: JobMarketData{
			DemandScore:    8.8,
			SalaryRange:    SalaryRange{Min: 110000, Max: 175000, Median: 142000},
			TrendingSkills: []string{"python", "r", "statistics", "machine learning", "tableau", "sql", "jupyter", "pandas"},
			GrowthRate:     0.28,
			MarketInsights: []string{
				"Data science roles growing 28% annually",
				"Statistical analysis and ML skills essential",
				"Business acumen increasingly important",
				"Remote data science roles widely available",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("devops") },
		data: JobMarketData{
			DemandScore:    9.0,
			SalaryRange:    SalaryRange{Min: 110000, Max: 180000, Median: 145000},
			TrendingSkills: []string{"kubernetes", "docker", "aws", "terraform", "ci/cd", "monitoring", "python", "go"},
			GrowthRate:     0.28,
			MarketInsights: []string{
				"DevOps roles growing 28% year-over-year",
				"Kubernetes skills in highest demand",
				"Cloud certification significantly increases salary potential",
				"Automation skills highly valued across industries",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("cloud") && t.has("architect") },
		data: JobMarketData{
			DemandScore:    8.9,
			SalaryRange:    SalaryRange{Min: 125000, Max: 190000, Median: 157000},
			TrendingSkills: []string{"aws", "azure", "gcp", "terraform", "kubernetes", "serverless", "microservices", "networking"},
			GrowthRate:     0.30,
			MarketInsights: []string{
				"Cloud architecture roles growing 30% annually",
				"Multi-cloud expertise highly valued",
				"Enterprise cloud migration driving demand",
				"Security and cost optimization skills critical",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("site reliability") || t.word("sre") },
		data: JobMarketData{
			DemandScore:    8.7,
			SalaryRange:    SalaryRange{Min: 115000, Max: 175000, Median: 145000},
			TrendingSkills: []string{"kubernetes", "monitoring", "automation", "python", "go", "aws", "prometheus", "grafana"},
			GrowthRate:     0.26,
			MarketInsights: []string{
				"SRE roles growing 26% year-over-year",
				"Observability and monitoring skills essential",
				"Incident management expertise highly valued",
				"Automation and reliability engineering in demand",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("cybersecurity", "cyber security") },
		data: JobMarketData{
			DemandScore:    8.8,
			SalaryRange:    SalaryRange{Min: 100000, Max: 170000, Median: 135000},
			TrendingSkills: []string{"python", "cloud security", "siem", "penetration testing", "risk management", "compliance"},
			GrowthRate:     0.31,
			MarketInsights: []string{
				"Cybersecurity demand up 31% due to increased threats",
				"Cloud security skills most critical",
				"Compliance expertise highly valued",
				"Remote security roles becoming more common",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("security") && t.has("engineer") },
		data: JobMarketData{
			DemandScore:    8.6,
			SalaryRange:    SalaryRange{Min: 105000, Max: 165000, Median: 135000},
			TrendingSkills: []string{"python", "application security", "penetration testing", "cloud security", "siem", "threat modeling"},
			GrowthRate:     0.29,
			MarketInsights: []string{
				"Security engineering roles growing 29% annually",
				"Application security skills in high demand",
				"DevSecOps practices becoming standard",
				"Threat modeling expertise increasingly valuable",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("data") && t.has("engineer") },
		data: JobMarketData{
			DemandScore:    8.5,
			SalaryRange:    SalaryRange{Min: 105000, Max: 165000, Median: 135000},
			TrendingSkills: []string{"python", "sql", "spark", "aws", "airflow", "kafka", "data modeling", "etl"},
			GrowthRate:     0.25,
			MarketInsights: []string{
				"Data engineering roles growing 25% annually",
				"Big data technologies in high demand",
				"Real-time data processing skills valued",
				"Cloud data platforms becoming standard",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("frontend") && devOrEng(t) },
		data: JobMarketData{
			DemandScore:    8.2,
			SalaryRange:    SalaryRange{Min: 90000, Max: 150000, Median: 120000},
			TrendingSkills: []string{"javascript", "react", "typescript", "next.js", "vue", "css", "web performance", "testing"},
			GrowthRate:     0.18,
			MarketInsights: []string{
				"Frontend roles growing 18% year-over-year",
				"React and TypeScript skills essential",
				"Web performance and accessibility increasingly important",
				"Remote frontend development widely available",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("backend") && devOrEng(t) },
		data: JobMarketData{
			DemandScore:    8.3,
			SalaryRange:    SalaryRange{Min: 95000, Max: 155000, Median: 125000},
			TrendingSkills: []string{"python", "java", "node.js", "microservices", "aws", "docker", "sql", "apis"},
			GrowthRate:     0.20,
			MarketInsights: []string{
				"Backend engineering roles growing 20% annually",
				"Microservices and cloud skills essential",
				"API development and database design critical",
				"Scalability and performance expertise valued",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("product") && t.has("manager") },
		data: JobMarketData{
			DemandScore:    8.0,
			SalaryRange:    SalaryRange{Min: 95000, Max: 160000, Median: 127000},
			TrendingSkills: []string{"product management", "agile", "user research", "data analysis", "roadmapping", "stakeholder management"},
			GrowthRate:     0.22,
			MarketInsights: []string{
				"Product management roles growing 22% annually",
				"Technical product management skills in high demand",
				"Data-driven decision making essential",
				"Cross-functional collaboration critical",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("data analyst") },
		data: JobMarketData{
			DemandScore:    7.8,
			SalaryRange:    SalaryRange{Min: 75000, Max: 120000, Median: 95000},
			TrendingSkills: []string{"sql", "excel", "python", "tableau", "power bi", "statistics", "data visualization"},
			GrowthRate:     0.15,
			MarketInsights: []string{
				"Data analysis roles growing 15% year-over-year",
				"SQL and visualization skills essential",
				"Business intelligence tools in high demand",
				"Remote data analysis roles increasingly common",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("web developer") },
		data: JobMarketData{
			DemandScore:    7.9,
			SalaryRange:    SalaryRange{Min: 80000, Max: 130000, Median: 105000},
			TrendingSkills: []string{"javascript", "html", "css", "react", "node.js", "responsive design", "web performance"},
			GrowthRate:     0.16,
			MarketInsights: []string{
				"Web development roles growing 16% annually",
				"Full-stack developers most in demand",
				"JavaScript frameworks essential",
				"Remote web development widely available",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("software") && devOrEng(t) },
		data: JobMarketData{
			DemandScore:    8.1,
			SalaryRange:    SalaryRange{Min: 85000, Max: 140000, Median: 112000},
			TrendingSkills: []string{"python", "java", "javascript", "git", "sql", "apis", "testing", "cloud"},
			GrowthRate:     0.17,
			MarketInsights: []string{
				"Software development roles growing 17% annually",
				"Cloud and DevOps skills increasingly required",
				"Full-stack capabilities highly valued",
				"Agile and collaboration skills essential",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("manager") },
		data: JobMarketData{
			DemandScore:    7.2,
			SalaryRange:    SalaryRange{Min: 80000, Max: 130000, Median: 105000},
			TrendingSkills: []string{"leadership", "project management", "communication", "team collaboration", "strategic planning"},
			GrowthRate:     0.12,
			MarketInsights: []string{
				"Management roles growing 12% annually",
				"Leadership and communication skills essential",
				"Strategic planning expertise valued",
				"Cross-functional collaboration critical",
			},
		},
	},
	{
		match: func(t titleWords) bool { return t.has("analyst") },
		data: JobMarketData{
			DemandScore:    7.4,
			SalaryRange:    SalaryRange{Min: 70000, Max: 115000, Median: 92000},
			TrendingSkills: []string{"data analysis", "problem solving", "communication", "excel", "presentation skills"},
			GrowthRate:     0.13,
			MarketInsights: []string{
				"Analysis roles growing 13% year-over-year",
				"Data interpretation skills essential",
				"Business acumen increasingly important",
				"Remote analysis roles widely available",
			},
		},
	},
}

var generalRole = JobMarketData{
	DemandScore:    7.0,
	SalaryRange:    SalaryRange{Min: 65000, Max: 110000, Median: 87000},
	TrendingSkills: []string{"communication", "teamwork", "problem solving", "time management", "adaptability"},
	GrowthRate:     0.10,
	MarketInsights: []string{
		"General roles growing 10% annually",
		"Digital transformation driving demand",
		"Remote work becoming standard",
		"Skills in technology increasingly valuable",
	},
}

// Generate builds the snapshot for title without caching. Unrecognized titles
// get the general profile; generation never fails.
func Generate(title string) JobMarketData {
	t := newTitleWords(title)
	data := generalRole
	for _, rule := range marketRules {
		if rule.match(t) {
			data = rule.data
			break
		}
	}

	data = data.clone()
	data.Title = title
	return data
}

var industrySkills = map[string][]string{
	"technology":    {"python", "javascript", "aws", "kubernetes", "react", "docker", "machine learning", "devops"},
	"healthcare":    {"python", "data analysis", "machine learning", "hipaa", "electronic health records", "biostatistics"},
	"finance":       {"python", "sql", "risk management", "compliance", "fintech", "blockchain", "data analysis"},
	"retail":        {"python", "data analysis", "inventory management", "customer analytics", "e-commerce", "supply chain"},
	"manufacturing": {"python", "iot", "automation", "data analysis", "supply chain", "quality control", "predictive maintenance"},
}

var defaultIndustrySkills = []string{"python", "data analysis", "communication", "project management"}

// TrendingSkillsByIndustry returns the trending skills of an industry, or a
// cross-industry default for unknown names.
func TrendingSkillsByIndustry(industry string) []string {
	skills, ok := industrySkills[strings.ToLower(strings.TrimSpace(industry))]
	if !ok {
		skills = defaultIndustrySkills
	}
	return append([]string(nil), skills...)
}

// Industries lists the industries with a dedicated trending list.
func Industries() []string {
	return []string{"finance", "healthcare", "manufacturing", "retail", "technology"}
}
