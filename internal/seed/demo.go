package seed

import (
	_ "embed"
)

//go:embed content/scalable-react.md
var scalableReactArticle string

const placeholderArticle = "Full article content here..."

const pexels = "https://images.pexels.com/photos/"

// UserSeed describes a demo member.
type UserSeed struct {
	Username       string   `yaml:"username"`
	Email          string   `yaml:"email"`
	FullName       string   `yaml:"full_name"`
	Bio            string   `yaml:"bio,omitempty"`
	Avatar         string   `yaml:"avatar"`
	Location       string   `yaml:"location,omitempty"`
	JoinDate       string   `yaml:"join_date"`
	GithubUsername string   `yaml:"github_username,omitempty"`
	LinkedinURL    string   `yaml:"linkedin_url,omitempty"`
	WebsiteURL     string   `yaml:"website_url,omitempty"`
	Skills         []string `yaml:"skills,omitempty"`
}

// PostSeed describes a demo blog post. Author is a username.
type PostSeed struct {
	Title         string   `yaml:"title"`
	Excerpt       string   `yaml:"excerpt"`
	Content       string   `yaml:"content"`
	Author        string   `yaml:"author"`
	PublishedDate string   `yaml:"published_date,omitempty"`
	ReadTime      string   `yaml:"read_time"`
	Views         int64    `yaml:"views"`
	Tags          []string `yaml:"tags"`
	Featured      bool     `yaml:"featured"`
	Image         string   `yaml:"image"`
}

// ProjectSeed describes a demo portfolio project. Owner is a username.
type ProjectSeed struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Owner       string   `yaml:"owner"`
	Image       string   `yaml:"image"`
	Tech        []string `yaml:"tech"`
	Stars       int      `yaml:"stars"`
	LiveURL     string   `yaml:"live_url"`
	GithubURL   string   `yaml:"github_url"`
	Featured    bool     `yaml:"featured"`
	// UpdatedDaysAgo positions the project on the dashboard timeline.
	UpdatedDaysAgo int `yaml:"updated_days_ago"`
}

// Manifest is the full set of demo content.
type Manifest struct {
	Users    []UserSeed    `yaml:"users"`
	Posts    []PostSeed    `yaml:"posts"`
	Projects []ProjectSeed `yaml:"projects"`
}

// Demo is the content shipped with a fresh install.
var Demo = Manifest{
	Users: []UserSeed{
		{
			Username:       "johndoe",
			Email:          "john@example.com",
			FullName:       "John Doe",
			Bio:            "Full-stack developer passionate about React, Node.js, and building scalable web applications. I love creating beautiful, functional user experiences.",
			Avatar:         pexels + "2379004/pexels-photo-2379004.jpeg?auto=compress&cs=tinysrgb&w=400",
			Location:       "San Francisco, CA",
			JoinDate:       "2022-01-15",
			GithubUsername: "johndoe",
			LinkedinURL:    "https://linkedin.com/in/johndoe",
			WebsiteURL:     "https://johndoe.dev",
			Skills: []string{
				"JavaScript", "TypeScript", "React", "Vue.js", "Node.js", "Express.js",
				"MongoDB", "PostgreSQL", "GraphQL", "REST APIs", "AWS", "Docker",
				"Git", "Tailwind CSS", "SCSS", "Jest", "Cypress", "Webpack",
			},
		},
		{
			Username: "janesmith",
			Email:    "jane@example.com",
			FullName: "Jane Smith",
			Avatar:   pexels + "415829/pexels-photo-415829.jpeg?auto=compress&cs=tinysrgb&w=400",
			JoinDate: "2022-06-01",
		},
		{
			Username: "mikejohnson",
			Email:    "mike@example.com",
			FullName: "Mike Johnson",
			Avatar:   pexels + "1239291/pexels-photo-1239291.jpeg?auto=compress&cs=tinysrgb&w=400",
			JoinDate: "2022-09-12",
		},
		{
			Username: "sarahwilson",
			Email:    "sarah@example.com",
			FullName: "Sarah Wilson",
			Avatar:   pexels + "774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=400",
			JoinDate: "2023-02-20",
		},
		{
			Username: "alexchen",
			Email:    "alex@example.com",
			FullName: "Alex Chen",
			Avatar:   pexels + "1222271/pexels-photo-1222271.jpeg?auto=compress&cs=tinysrgb&w=400",
			JoinDate: "2023-05-08",
		},
	},
	Posts: []PostSeed{
		{
			Title:         "Building Scalable React Applications",
			Excerpt:       "Learn best practices for building large-scale React applications with proper architecture, state management, and performance optimization techniques.",
			Content:       scalableReactArticle,
			Author:        "johndoe",
			PublishedDate: "2024-01-15",
			ReadTime:      "8 min read",
			Views:         1250,
			Tags:          []string{"React", "JavaScript", "Architecture", "Performance", "Testing"},
			Featured:      true,
			Image:         pexels + "11035380/pexels-photo-11035380.jpeg?auto=compress&cs=tinysrgb&w=600",
		},
		{
			Title:         "MongoDB Performance Optimization",
			Excerpt:       "Tips and tricks for optimizing MongoDB queries and improving database performance in production environments.",
			Content:       placeholderArticle,
			Author:        "janesmith",
			PublishedDate: "2024-01-12",
			ReadTime:      "12 min read",
			Views:         980,
			Tags:          []string{"MongoDB", "Database", "Performance"},
			Image:         pexels + "270348/pexels-photo-270348.jpeg?auto=compress&cs=tinysrgb&w=600",
		},
		{
			Title:         "Modern CSS Grid Layouts",
			Excerpt:       "Explore the power of CSS Grid for creating responsive and flexible layouts with practical examples and best practices.",
			Content:       placeholderArticle,
			Author:        "mikejohnson",
			PublishedDate: "2024-01-10",
			ReadTime:      "6 min read",
			Views:         750,
			Tags:          []string{"CSS", "Grid", "Layout"},
			Image:         pexels + "196644/pexels-photo-196644.jpeg?auto=compress&cs=tinysrgb&w=600",
		},
		{
			Title:         "Node.js Security Best Practices",
			Excerpt:       "Essential security practices for Node.js applications, including authentication, authorization, and protecting against common vulnerabilities.",
			Content:       placeholderArticle,
			Author:        "sarahwilson",
			PublishedDate: "2024-01-08",
			ReadTime:      "10 min read",
			Views:         1180,
			Tags:          []string{"Node.js", "Security", "Backend"},
			Featured:      true,
			Image:         pexels + "60504/security-protection-anti-virus-software-60504.jpeg?auto=compress&cs=tinysrgb&w=600",
		},
		{
			Title:         "TypeScript Advanced Types",
			Excerpt:       "Dive deep into TypeScript's advanced type system including generics, conditional types, and mapped types.",
			Content:       placeholderArticle,
			Author:        "alexchen",
			PublishedDate: "2024-01-05",
			ReadTime:      "15 min read",
			Views:         890,
			Tags:          []string{"TypeScript", "Types", "Advanced"},
			Image:         pexels + "1181671/pexels-photo-1181671.jpeg?auto=compress&cs=tinysrgb&w=600",
		},
	},
	Projects: []ProjectSeed{
		{
			Title:          "E-commerce Platform",
			Description:    "A full-stack e-commerce platform built with React, Node.js, and MongoDB. Features include user authentication, shopping cart, payment integration, and admin dashboard.",
			Owner:          "johndoe",
			Image:          pexels + "230544/pexels-photo-230544.jpeg?auto=compress&cs=tinysrgb&w=600",
			Tech:           []string{"React", "Node.js", "MongoDB", "Stripe", "Tailwind CSS"},
			Stars:          42,
			LiveURL:        "https://ecommerce-demo.com",
			GithubURL:      "https://github.com/johndoe/ecommerce-platform",
			Featured:       true,
			UpdatedDaysAgo: 2,
		},
		{
			Title:          "Task Management App",
			Description:    "Real-time task management application with team collaboration features. Built with Vue.js and Socket.io for real-time updates.",
			Owner:          "johndoe",
			Image:          pexels + "3184306/pexels-photo-3184306.jpeg?auto=compress&cs=tinysrgb&w=600",
			Tech:           []string{"Vue.js", "Express", "Socket.io", "PostgreSQL"},
			Stars:          28,
			LiveURL:        "https://taskmanager-demo.com",
			GithubURL:      "https://github.com/johndoe/task-manager",
			Featured:       true,
			UpdatedDaysAgo: 7,
		},
		{
			Title:          "Weather Dashboard",
			Description:    "A beautiful weather dashboard with location-based forecasts and interactive charts. Uses OpenWeatherMap API.",
			Owner:          "johndoe",
			Image:          pexels + "1118873/pexels-photo-1118873.jpeg?auto=compress&cs=tinysrgb&w=600",
			Tech:           []string{"React", "Chart.js", "OpenWeatherMap API", "CSS Grid"},
			Stars:          15,
			LiveURL:        "https://weather-dashboard-demo.com",
			GithubURL:      "https://github.com/johndoe/weather-dashboard",
			UpdatedDaysAgo: 21,
		},
		{
			Title:          "Blog Platform",
			Description:    "A markdown-based blog platform with syntax highlighting and responsive design. Built with Next.js.",
			Owner:          "johndoe",
			Image:          pexels + "261763/pexels-photo-261763.jpeg?auto=compress&cs=tinysrgb&w=600",
			Tech:           []string{"Next.js", "Markdown", "Prism.js", "Styled Components"},
			Stars:          31,
			LiveURL:        "https://blog-platform-demo.com",
			GithubURL:      "https://github.com/johndoe/blog-platform",
			UpdatedDaysAgo: 45,
		},
	},
}
