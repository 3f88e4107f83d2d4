package catalog

import "slices"

// screenshot returns a microlink screenshot URL for a deployed site.
func screenshot(site string) string {
	return "https://api.microlink.io/?url=" + site + "&screenshot=true&meta=false&embed=screenshot.url"
}

var projectCatalog = []Project{
	{
		ID:          "video-downloader",
		Title:       "Video Downloader",
		Description: "Seamlessly save high-quality videos from YouTube & TikTok. Fast, free, and unlimited.",
		Image:       screenshot("https://videodownloader-nu-six.vercel.app/"),
		Link:        "https://videodownloader-nu-six.vercel.app/",
		Tags:        []string{"React", "Next.js", "API"},
		Featured:    true,
	},
	{
		ID:          "tg-accessories",
		Title:       "TG Accessories",
		Description: "Premium tech accessories for your digital life. Power solutions, cables, and more.",
		Image:       screenshot("https://tgaccessories.vercel.app/"),
		Link:        "https://tgaccessories.vercel.app/",
		Tags:        []string{"E-commerce", "React", "Tailwind"},
		Featured:    true,
	},
	{
		ID:          "pixel-arcade",
		Title:       "Pixel Arcade",
		Description: "A curated collection of timeless games reimagined with modern performance.",
		Image:       screenshot("https://gamestudio-woad.vercel.app/"),
		Link:        "https://gamestudio-woad.vercel.app/",
		Tags:        []string{"Gaming", "React", "Canvas"},
		Featured:    true,
	},
	{
		ID:          "archery-duck-hunter",
		Title:       "3D Archery Duck Hunter",
		Description: "Master the bow and conquer the seasons in this immersive 3D archery game.",
		Image:       screenshot("https://duckshooting.vercel.app/"),
		Link:        "https://duckshooting.vercel.app/",
		Tags:        []string{"3D", "Three.js", "Game"},
		Featured:    true,
	},
	{
		ID:          "tertulia-impulsiva",
		Title:       "Tertulia Impulsiva",
		Description: "Specialized mobile phone repair services. Fast, reliable, and affordable repairs for all brands.",
		Image:       screenshot("https://imobilerepairing-tau.vercel.app/"),
		Link:        "https://imobilerepairing-tau.vercel.app/",
		Tags:        []string{"Service", "Business", "React"},
		Featured:    true,
	},
	{
		ID:          "bombsquad",
		Title:       "BombSquad",
		Description: "Strategic arcade game. Survive, destroy, and conquer in this explosive space adventure.",
		Image:       screenshot("https://bombsquad-tau.vercel.app/"),
		Link:        "https://bombsquad-tau.vercel.app/",
		Tags:        []string{"Gaming", "React", "Canvas"},
		Featured:    true,
	},
	{
		ID:          "lms-platform",
		Title:       "LMS Platform",
		Description: "Learning Management System with admin controls, course management, and student tracking.",
		Image:       screenshot("https://lms-jet-theta.vercel.app/"),
		Link:        "https://lms-jet-theta.vercel.app/",
		Tags:        []string{"Education", "Next.js", "Dashboard"},
		Featured:    true,
	},
	{
		ID:          "stock-market-prediction",
		Title:       "Stock Market Prediction",
		Description: "Data-driven stock forecasting with market signals and performance insights.",
		Image:       screenshot("https://stockmarketprediction-phi.vercel.app/"),
		Link:        "https://stockmarketprediction-phi.vercel.app/",
		Tags:        []string{"Finance", "Analytics", "ML"},
		Featured:    true,
	},
}

var certificateCatalog = []Certificate{
	{
		ID:          "bs-computer-science",
		Title:       "BS Computer Science",
		Issuer:      "University of Gujrat",
		Date:        "2024-01-01",
		Description: "Graduated with honors, specializing in AI and Data Science. Completed capstone project on Neural Networks.",
		Type:        TypeEducation,
		Link:        "https://uog.edu.pk/",
	},
	{
		ID:          "react-certification",
		Title:       "React.js Certification",
		Issuer:      "LinkedIn Learning",
		Date:        "2024-01-01",
		Description: "Advanced concepts including Hooks, Context API, and performance optimization for modern web apps.",
		Type:        TypeCertification,
		Link:        "https://www.linkedin.com/learning/certificates/1a0836280fccd3487fca28edce2c52e949f9ef82b18196d88f849851b1f49b45?trk=share_certificate",
	},
	{
		ID:          "node-certification",
		Title:       "Node.js Certification",
		Issuer:      "LinkedIn Learning",
		Date:        "2024-01-01",
		Description: "Backend development mastery covering event-driven architecture, streams, and RESTful API design.",
		Type:        TypeCertification,
		Link:        "https://www.linkedin.com/learning/certificates/ebfda41df6410f97ba15f155c1ffed28e257c0c96a4464c5e9df05871deb17e3?trk=share_certificate",
	},
	{
		ID:          "php-mysql-certification",
		Title:       "PHP & MySQL Certification",
		Issuer:      "LinkedIn Learning",
		Date:        "2024-01-01",
		Description: "Comprehensive guide to server-side scripting and database management for dynamic websites.",
		Type:        TypeCertification,
		Link:        "https://www.linkedin.com/learning/certificates/6e4138cd0737cc95f6ce73d8ef23dba53c961800fa01c9db09713d5fb490b117?trk=share_certificate",
	},
	{
		ID:          "flask-certification",
		Title:       "Flask Certification",
		Issuer:      "LinkedIn Learning",
		Date:        "2024-01-01",
		Description: "Building scalable web applications with Python using the Flask microframework.",
		Type:        TypeCertification,
		Link:        "https://www.linkedin.com/learning/certificates/be3e2b2fbc3d16964905a846e9cade13a597934822560141bff571b96a2c13aa?trk=share_certificate",
	},
	{
		ID:          "machine-learning-certification",
		Title:       "Machine Learning Certification",
		Issuer:      "Great Learning",
		Date:        "2023-01-01",
		Description: "Intensive course covering supervised/unsupervised learning, neural networks, and deep learning architectures.",
		Type:        TypeCertification,
		Link:        "https://www.mygreatlearning.com/certificate/FPMZDTXL",
	},
}

// Projects returns a copy of the authored project catalog.
func Projects() []Project {
	out := make([]Project, len(projectCatalog))
	for i, p := range projectCatalog {
		p.Tags = slices.Clone(p.Tags)
		out[i] = p
	}
	return out
}

// Certificates returns a copy of the authored certificate catalog.
func Certificates() []Certificate {
	return slices.Clone(certificateCatalog)
}
