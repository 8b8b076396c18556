package catalog

import "github.com/mentorsetu/mentorsetu-api/internal/models"

// seedMentors is the launch catalog, in listing order
var seedMentors = []models.Mentor{
	{
		ID:          "1",
		Name:        "Sarah Johnson",
		Title:       "Senior Software Engineer",
		Company:     "Google",
		Location:    "San Francisco, CA",
		Avatar:      "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=150&h=150&fit=crop&crop=face",
		Category:    "Technology",
		Expertise:   []string{"React", "Node.js", "System Design", "Career Growth", "JavaScript", "TypeScript"},
		Rating:      4.9,
		ReviewCount: 127,
		Price:       2500,
		Experience:  "10+ years",
		Bio:         "10+ years of experience in full-stack development. Helped 100+ engineers advance their careers.",
		FullBio: "I'm a Senior Software Engineer at Google with over 10 years of experience in full-stack development. " +
			"I've worked on large-scale systems serving millions of users and have led multiple engineering teams. " +
			"My passion lies in helping aspiring developers and engineers navigate their career paths and develop the " +
			"technical skills needed to succeed in the tech industry. I've mentored over 100 engineers, helping them " +
			"land jobs at top tech companies and advance in their careers.",
		Achievements: []string{
			"Led development of Google's core search infrastructure",
			"Mentored 100+ engineers to career success",
			"Speaker at 15+ tech conferences",
			"Published 20+ technical articles",
		},
		Languages:    []string{"English", "Spanish"},
		SessionTypes: []string{"Career Guidance", "Technical Interview Prep", "Code Review", "System Design"},
		Availability: "Weekdays 6-9 PM PST, Weekends 10 AM - 4 PM PST",
	},
	{
		ID:          "2",
		Name:        "Michael Chen",
		Title:       "Product Manager",
		Company:     "Meta",
		Location:    "Seattle, WA",
		Avatar:      "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
		Category:    "Product",
		Expertise:   []string{"Product Strategy", "User Research", "Analytics", "Leadership"},
		Rating:      4.8,
		ReviewCount: 89,
		Price:       3000,
		Experience:  "8+ years",
		Bio:         "Led product teams at top tech companies. Expert in product strategy and user-centered design.",
		FullBio: "I lead product teams at Meta and have shipped consumer features used by hundreds of millions of people. " +
			"I help engineers and designers move into product roles, prepare for PM interviews and build a habit of " +
			"making decisions from user research and data.",
		Achievements: []string{
			"Launched three consumer products past 100M users",
			"Built and coached a team of 12 product managers",
			"Guest lecturer on product strategy",
		},
		Languages:    []string{"English", "Mandarin"},
		SessionTypes: []string{"Career Guidance", "General Mentorship"},
		Availability: "Weekdays 7-9 PM PST",
	},
	{
		ID:          "3",
		Name:        "Emily Rodriguez",
		Title:       "UX Design Director",
		Company:     "Adobe",
		Location:    "Austin, TX",
		Avatar:      "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop&crop=face",
		Category:    "Design",
		Expertise:   []string{"UI/UX Design", "Design Systems", "User Research", "Prototyping"},
		Rating:      4.9,
		ReviewCount: 156,
		Price:       2800,
		Experience:  "12+ years",
		Bio:         "Award-winning designer with expertise in creating user-centered digital experiences.",
		FullBio: "I direct UX design at Adobe and have spent more than a decade building design systems and leading " +
			"research-driven product design. I review portfolios, run mock design critiques and help designers grow " +
			"into leadership roles.",
		Achievements: []string{
			"Led the design system behind Adobe's web apps",
			"Winner of multiple international design awards",
			"Portfolio reviewer for 200+ designers",
		},
		Languages:    []string{"English", "Spanish"},
		SessionTypes: []string{"Career Guidance", "Code Review", "General Mentorship"},
		Availability: "Tuesdays and Thursdays 5-8 PM CST",
	},
	{
		ID:          "4",
		Name:        "David Kim",
		Title:       "Data Science Manager",
		Company:     "Netflix",
		Location:    "Los Angeles, CA",
		Avatar:      "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
		Category:    "Data Science",
		Expertise:   []string{"Machine Learning", "Python", "Data Analytics", "AI Strategy"},
		Rating:      4.7,
		ReviewCount: 94,
		Price:       3200,
		Experience:  "9+ years",
		Bio:         "Leading data science initiatives at scale. Passionate about mentoring the next generation of data scientists.",
		FullBio: "I manage a data science team at Netflix working on personalization and experimentation. I help analysts " +
			"and engineers break into machine learning, prepare for data science interviews and structure real-world " +
			"modelling projects.",
		Achievements: []string{
			"Built recommendation models serving a global audience",
			"Hired and mentored 30+ data scientists",
			"Published research on large-scale experimentation",
		},
		Languages:    []string{"English", "Korean"},
		SessionTypes: []string{"Technical Interview Prep", "Code Review", "General Mentorship"},
		Availability: "Weekends 9 AM - 1 PM PST",
	},
	{
		ID:          "5",
		Name:        "Lisa Patel",
		Title:       "Marketing Director",
		Company:     "Spotify",
		Location:    "New York, NY",
		Avatar:      "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=150&h=150&fit=crop&crop=face",
		Category:    "Marketing",
		Expertise:   []string{"Digital Marketing", "Brand Strategy", "Growth Hacking", "Analytics"},
		Rating:      4.8,
		ReviewCount: 112,
		Price:       2200,
		Experience:  "7+ years",
		Bio:         "Growth marketing expert who has scaled multiple startups. Specializes in data-driven marketing strategies.",
		FullBio: "I run growth marketing at Spotify after scaling several startups from launch to millions of users. " +
			"I help marketers build measurable acquisition funnels, position brands and grow into leadership.",
		Achievements: []string{
			"Scaled two startups past 1M users",
			"Ran campaigns recognised by industry awards",
			"Mentor in a women-in-marketing program",
		},
		Languages:    []string{"English", "Hindi", "Gujarati"},
		SessionTypes: []string{"Career Guidance", "General Mentorship"},
		Availability: "Weekdays 6-8 PM EST",
	},
	{
		ID:          "6",
		Name:        "James Wilson",
		Title:       "Startup Founder & CEO",
		Company:     "TechVenture Inc",
		Location:    "San Francisco, CA",
		Avatar:      "https://images.unsplash.com/photo-1560250097-0b93528c311a?w=150&h=150&fit=crop&crop=face",
		Category:    "Business",
		Expertise:   []string{"Entrepreneurship", "Fundraising", "Business Strategy", "Leadership"},
		Rating:      4.9,
		ReviewCount: 203,
		Price:       4000,
		Experience:  "15+ years",
		Bio:         "Serial entrepreneur with 2 successful exits. Mentor to 50+ startup founders and business leaders.",
		FullBio: "I've founded three companies and led two of them to acquisition. I work with first-time founders on " +
			"fundraising, go-to-market strategy and building their first leadership team.",
		Achievements: []string{
			"Two successful startup exits",
			"Raised over $40M in venture funding",
			"Mentor to 50+ startup founders",
		},
		Languages:    []string{"English"},
		SessionTypes: []string{"Career Guidance", "General Mentorship"},
		Availability: "Fridays 10 AM - 2 PM PST",
	},
}

// seedReviews are shown on every profile page
var seedReviews = []models.Review{
	{
		ID:          "1",
		StudentName: "Alex Chen",
		Rating:      5,
		Comment:     "Sarah provided excellent guidance on system design concepts. Her explanations were clear and practical. Highly recommend!",
		Date:        "2024-01-15",
		Avatar:      "/placeholder.svg?height=40&width=40&text=AC",
	},
	{
		ID:          "2",
		StudentName: "Maria Garcia",
		Rating:      5,
		Comment:     "Amazing mentor! Helped me prepare for my Google interview. I got the job thanks to her guidance.",
		Date:        "2024-01-10",
		Avatar:      "/placeholder.svg?height=40&width=40&text=MG",
	},
	{
		ID:          "3",
		StudentName: "David Kim",
		Rating:      4,
		Comment:     "Very knowledgeable and patient. Great insights into career growth in tech.",
		Date:        "2024-01-05",
		Avatar:      "/placeholder.svg?height=40&width=40&text=DK",
	},
}

// Mentors returns a fresh copy of the seed catalog
func Mentors() []*models.Mentor {
	out := make([]*models.Mentor, 0, len(seedMentors))
	for i := range seedMentors {
		m := seedMentors[i]
		m.Expertise = append([]string(nil), m.Expertise...)
		m.Achievements = append([]string(nil), m.Achievements...)
		m.Languages = append([]string(nil), m.Languages...)
		m.SessionTypes = append([]string(nil), m.SessionTypes...)
		out = append(out, &m)
	}
	return out
}

// Reviews returns a copy of the global review list
func Reviews() []models.Review {
	return append([]models.Review(nil), seedReviews...)
}
