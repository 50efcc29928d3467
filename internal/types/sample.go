package types

// SampleDocument returns a complete starter résumé. The init command writes it
// out as resume.json; tests use it as a fixture.
func SampleDocument() *Document {
	return &Document{
		Profile: Profile{
			Name:     "Jordan Rivera",
			Title:    "Senior Backend Engineer",
			Phone:    "+1 555 0100",
			Email:    "jordan@example.com",
			LinkedIn: "https://www.linkedin.com/in/jordan-rivera",
		},
		Summary: "Backend engineer focused on reliable data platforms.",
		Experience: []Experience{
			{
				Role:        "Senior Backend Engineer",
				Company:     "Northwind Logistics",
				Duration:    "2021 - Present",
				Location:    "Remote",
				Description: "Owns the shipment tracking platform.",
				Bullets: []string{
					"Cut p99 tracking latency from 900ms to 120ms",
					"Led migration of 40 services to a shared event bus",
				},
			},
			{
				Role:     "Software Engineer",
				Company:  "Contoso Health",
				Duration: "2017 - 2021",
				Location: "Austin, TX",
				Bullets: []string{
					"Built the claims ingestion pipeline",
				},
			},
		},
		Education: []Education{
			{
				Degree:      "B.S. Computer Science",
				Institution: "University of Texas",
				Location:    "Austin, TX",
				Year:        "2017",
				Details:     "Minor in Mathematics",
			},
		},
		Skills: []Skill{
			{Category: "Languages", Items: "Go, Python, SQL"},
			{Category: "Infrastructure", Items: "Kubernetes, Postgres, Kafka"},
		},
		Projects: []Project{
			{
				Title:       "tracectl",
				Subtitle:    "Open source",
				Duration:    "2022",
				Description: "CLI for replaying distributed traces.",
				Bullets:     []string{"300 stars on GitHub"},
			},
			{
				Title:       "Route planner",
				Subtitle:    "Hackathon",
				Duration:    "2019",
				Description: "Won first place.",
			},
		},
		Engagements: []Engagement{
			{Title: "Speaker", Description: "GopherCon 2023\nLocal Go meetup"},
		},
		Settings: Settings{
			Titles: map[string]string{
				SectionSummary:     "Summary",
				SectionExperience:  "Experience",
				SectionEducation:   "Education",
				SectionSkills:      "Skills",
				SectionProjects:    "Projects",
				SectionEngagements: "Engagements",
			},
			Layout:    DefaultLayout(),
			FontScale: DefaultFontScale,
		},
	}
}
