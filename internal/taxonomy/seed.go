package taxonomy

// Seed vocabularies loaded into the store on first migration. All
// scorable fields must come from these controlled lists; free text is
// never scored.

func SeedItems() map[Kind][]Item {
	return map[Kind][]Item{
		KindValue:    seedValues,
		KindCause:    seedCauses,
		KindSkill:    seedSkills,
		KindLanguage: seedLanguages,
		KindCurrency: seedCurrencies,
	}
}

var seedValues = []Item{
	{Key: "collaboration", Label: "Collaboration"},
	{Key: "innovation", Label: "Innovation"},
	{Key: "sustainability", Label: "Sustainability"},
	{Key: "equity", Label: "Equity & Justice"},
	{Key: "transparency", Label: "Transparency"},
	{Key: "community", Label: "Community-Driven"},
	{Key: "impact", Label: "Impact-First"},
	{Key: "empowerment", Label: "Empowerment"},
	{Key: "integrity", Label: "Integrity"},
	{Key: "resilience", Label: "Resilience"},
	{Key: "inclusion", Label: "Inclusion & Diversity"},
	{Key: "learning", Label: "Continuous Learning"},
	{Key: "accountability", Label: "Accountability"},
	{Key: "creativity", Label: "Creativity"},
	{Key: "systems-thinking", Label: "Systems Thinking"},
	{Key: "long-term", Label: "Long-Term Vision"},
	{Key: "participation", Label: "Democratic Participation"},
	{Key: "solidarity", Label: "Solidarity"},
	{Key: "care", Label: "Care & Compassion"},
	{Key: "autonomy", Label: "Autonomy"},
}

var seedCauses = []Item{
	{Key: "climate-action", Label: "Climate Action"},
	{Key: "clean-energy", Label: "Clean Energy"},
	{Key: "biodiversity", Label: "Biodiversity & Conservation"},
	{Key: "education", Label: "Quality Education"},
	{Key: "health", Label: "Health & Well-being"},
	{Key: "poverty", Label: "No Poverty"},
	{Key: "hunger", Label: "Zero Hunger"},
	{Key: "gender-equality", Label: "Gender Equality"},
	{Key: "clean-water", Label: "Clean Water & Sanitation"},
	{Key: "decent-work", Label: "Decent Work & Economic Growth"},
	{Key: "reduced-inequalities", Label: "Reduced Inequalities"},
	{Key: "sustainable-cities", Label: "Sustainable Cities"},
	{Key: "responsible-consumption", Label: "Responsible Consumption"},
	{Key: "life-below-water", Label: "Life Below Water"},
	{Key: "life-on-land", Label: "Life On Land"},
	{Key: "peace-justice", Label: "Peace, Justice & Strong Institutions"},
	{Key: "partnerships", Label: "Partnerships for the Goals"},
	{Key: "human-rights", Label: "Human Rights"},
	{Key: "refugee-migration", Label: "Refugee & Migration Support"},
	{Key: "mental-health", Label: "Mental Health"},
	{Key: "digital-rights", Label: "Digital Rights & Privacy"},
	{Key: "civic-tech", Label: "Civic Technology"},
	{Key: "arts-culture", Label: "Arts & Culture"},
	{Key: "food-systems", Label: "Regenerative Food Systems"},
}

var seedSkills = []Item{
	{Key: "javascript", Label: "JavaScript", Category: "Engineering"},
	{Key: "typescript", Label: "TypeScript", Category: "Engineering"},
	{Key: "python", Label: "Python", Category: "Engineering"},
	{Key: "react", Label: "React", Category: "Engineering"},
	{Key: "node", Label: "Node.js", Category: "Engineering"},
	{Key: "sql", Label: "SQL & Databases", Category: "Engineering"},
	{Key: "devops", Label: "DevOps & CI/CD", Category: "Engineering"},
	{Key: "cloud", Label: "Cloud Infrastructure", Category: "Engineering"},
	{Key: "api-design", Label: "API Design", Category: "Engineering"},
	{Key: "testing", Label: "Testing & QA", Category: "Engineering"},
	{Key: "data-analysis", Label: "Data Analysis", Category: "Data & AI"},
	{Key: "machine-learning", Label: "Machine Learning", Category: "Data & AI"},
	{Key: "data-visualization", Label: "Data Visualization", Category: "Data & AI"},
	{Key: "statistical-modeling", Label: "Statistical Modeling", Category: "Data & AI"},
	{Key: "ui-design", Label: "UI Design", Category: "Design"},
	{Key: "ux-research", Label: "UX Research", Category: "Design"},
	{Key: "service-design", Label: "Service Design", Category: "Design"},
	{Key: "design-systems", Label: "Design Systems", Category: "Design"},
	{Key: "accessibility", Label: "Accessibility", Category: "Design"},
	{Key: "product-management", Label: "Product Management", Category: "Product & Strategy"},
	{Key: "product-strategy", Label: "Product Strategy", Category: "Product & Strategy"},
	{Key: "roadmap-planning", Label: "Roadmap Planning", Category: "Product & Strategy"},
	{Key: "user-research", Label: "User Research", Category: "Product & Strategy"},
	{Key: "facilitation", Label: "Facilitation", Category: "Leadership"},
	{Key: "stakeholder-management", Label: "Stakeholder Management", Category: "Leadership"},
	{Key: "public-speaking", Label: "Public Speaking", Category: "Leadership"},
	{Key: "writing", Label: "Writing & Communication", Category: "Leadership"},
	{Key: "team-leadership", Label: "Team Leadership", Category: "Leadership"},
	{Key: "coaching-mentoring", Label: "Coaching & Mentoring", Category: "Leadership"},
	{Key: "grant-writing", Label: "Grant Writing", Category: "Fundraising & Finance"},
	{Key: "fundraising", Label: "Fundraising", Category: "Fundraising & Finance"},
	{Key: "budget-management", Label: "Budget Management", Category: "Fundraising & Finance"},
	{Key: "financial-modeling", Label: "Financial Modeling", Category: "Fundraising & Finance"},
	{Key: "impact-measurement", Label: "Impact Measurement", Category: "Impact & Research"},
	{Key: "qualitative-research", Label: "Qualitative Research", Category: "Impact & Research"},
	{Key: "quantitative-research", Label: "Quantitative Research", Category: "Impact & Research"},
	{Key: "operations", Label: "Operations Management", Category: "Operations"},
	{Key: "project-management", Label: "Project Management", Category: "Operations"},
	{Key: "legal", Label: "Legal & Compliance", Category: "Operations"},
	{Key: "hr", Label: "HR & People Ops", Category: "Operations"},
	{Key: "marketing-strategy", Label: "Marketing Strategy", Category: "Marketing"},
	{Key: "content-creation", Label: "Content Creation", Category: "Marketing"},
	{Key: "social-media", Label: "Social Media", Category: "Marketing"},
	{Key: "storytelling", Label: "Storytelling", Category: "Marketing"},
	{Key: "branding", Label: "Branding", Category: "Marketing"},
}

var seedLanguages = []Item{
	{Key: "en", Label: "English"},
	{Key: "es", Label: "Spanish"},
	{Key: "fr", Label: "French"},
	{Key: "de", Label: "German"},
	{Key: "it", Label: "Italian"},
	{Key: "pt", Label: "Portuguese"},
	{Key: "zh", Label: "Chinese"},
	{Key: "ja", Label: "Japanese"},
	{Key: "ko", Label: "Korean"},
	{Key: "ar", Label: "Arabic"},
	{Key: "hi", Label: "Hindi"},
	{Key: "ru", Label: "Russian"},
	{Key: "sv", Label: "Swedish"},
	{Key: "nl", Label: "Dutch"},
	{Key: "pl", Label: "Polish"},
}

var seedCurrencies = []Item{
	{Key: "usd", Label: "USD"},
	{Key: "eur", Label: "EUR"},
	{Key: "gbp", Label: "GBP"},
	{Key: "sek", Label: "SEK"},
	{Key: "cad", Label: "CAD"},
	{Key: "aud", Label: "AUD"},
	{Key: "jpy", Label: "JPY"},
	{Key: "chf", Label: "CHF"},
}
