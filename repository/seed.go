package repository

import (
	"context"
	"fmt"
	"time"

	"career-guide/logger"
	"career-guide/models"
)

// PlaceholderPasswordHash is stored for seeded counselors when no seed
// password is configured. It is not a valid bcrypt hash, so those accounts
// cannot log in.
const PlaceholderPasswordHash = "$2a$10$example.hash.for.password123"

var seededAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// SeedDefaults writes the stock counselors, assessment and blog posts into
// every collection that is still empty.
func SeedDefaults(ctx context.Context, repos *Repositories, counselorPasswordHash string) error {
	if counselorPasswordHash == "" {
		counselorPasswordHash = PlaceholderPasswordHash
	}

	if wrote, err := repos.Users.Seed(ctx, DefaultCounselors(counselorPasswordHash)); err != nil {
		return fmt.Errorf("seed users: %w", err)
	} else if wrote {
		logger.Info("Seeded %s collection", usersCollection)
	}

	if wrote, err := repos.Assessments.Seed(ctx, DefaultAssessments()); err != nil {
		return fmt.Errorf("seed assessments: %w", err)
	} else if wrote {
		logger.Info("Seeded %s collection", assessmentsCollection)
	}

	if wrote, err := repos.Blog.Seed(ctx, DefaultBlogPosts()); err != nil {
		return fmt.Errorf("seed blog posts: %w", err)
	} else if wrote {
		logger.Info("Seeded %s collection", blogCollection)
	}
	return nil
}

func DefaultCounselors(passwordHash string) []models.User {
	counselor := func(id, name, email string, p models.Profile) models.User {
		return models.User{
			Base:              models.Base{ID: id, CreatedAt: seededAt, UpdatedAt: seededAt},
			Name:              name,
			Email:             email,
			Password:          passwordHash,
			Role:              models.RoleCounselor,
			Profile:           &p,
			IsActive:          true,
			AssessmentResults: []models.AssessmentResult{},
		}
	}
	return []models.User{
		counselor("counselor1", "Dr. Sarah Johnson", "sarah.johnson@careerguide.com", models.Profile{
			Specialization: "Technology Careers",
			Experience:     "10+ years",
			Bio:            "Specialized in guiding students towards successful technology careers",
		}),
		counselor("counselor2", "Dr. Michael Chen", "michael.chen@careerguide.com", models.Profile{
			Specialization: "Business & Management",
			Experience:     "8+ years",
			Bio:            "Expert in business strategy and management career paths",
		}),
		counselor("counselor3", "Dr. Emily Davis", "emily.davis@careerguide.com", models.Profile{
			Specialization: "Healthcare & Psychology",
			Experience:     "12+ years",
			Bio:            "Helping students find their path in healthcare and psychology fields",
		}),
	}
}

func DefaultBlogPosts() []models.BlogPost {
	return []models.BlogPost{
		{
			ID:          1,
			Title:       "Top 10 Tech Careers in 2024",
			Excerpt:     "Explore the most in-demand technology careers and what skills you need to succeed.",
			Content:     "Technology continues to evolve rapidly, creating new opportunities for career growth...",
			Author:      "Dr. Sarah Johnson",
			PublishedAt: "2024-01-15",
			Category:    "Technology",
		},
		{
			ID:          2,
			Title:       "How to Ace Your First Job Interview",
			Excerpt:     "Essential tips and strategies for making a great first impression.",
			Content:     "Job interviews can be nerve-wracking, but with proper preparation...",
			Author:      "Dr. Michael Chen",
			PublishedAt: "2024-01-10",
			Category:    "Career Tips",
		},
		{
			ID:          3,
			Title:       "Healthcare Career Opportunities",
			Excerpt:     "Discover the diverse career paths available in the healthcare industry.",
			Content:     "The healthcare industry offers numerous rewarding career opportunities...",
			Author:      "Dr. Emily Davis",
			PublishedAt: "2024-01-05",
			Category:    "Healthcare",
		},
	}
}

func DefaultAssessments() []models.Assessment {
	opt := func(text string, value float64, c models.Category) models.Option {
		return models.Option{Text: text, Value: value, Category: c}
	}
	return []models.Assessment{{
		Base:        models.Base{ID: "1", CreatedAt: seededAt, UpdatedAt: seededAt},
		Title:       "Career Interest Assessment",
		Description: "Discover your ideal career path through this comprehensive assessment",
		IsActive:    true,
		CreatedBy:   models.Creator{Name: "System"},
		Questions: []models.Question{
			{ID: 1, Question: "What type of work environment do you prefer?", Options: []models.Option{
				opt("Collaborative team environment", 4, models.CategoryBusiness),
				opt("Independent work with minimal supervision", 3, models.CategoryTechnology),
				opt("Creative and flexible workspace", 4, models.CategoryCreative),
				opt("Structured and organized environment", 3, models.CategoryHealthcare),
			}},
			{ID: 2, Question: "Which activities do you find most engaging?", Options: []models.Option{
				opt("Solving complex problems and puzzles", 4, models.CategoryTechnology),
				opt("Helping and supporting others", 4, models.CategoryHealthcare),
				opt("Creating and designing new things", 4, models.CategoryCreative),
				opt("Leading projects and managing teams", 4, models.CategoryBusiness),
			}},
			{ID: 3, Question: "What motivates you most in your work?", Options: []models.Option{
				opt("Making a positive impact on people's lives", 4, models.CategoryHealthcare),
				opt("Building innovative solutions", 4, models.CategoryTechnology),
				opt("Expressing creativity and artistic vision", 4, models.CategoryCreative),
				opt("Achieving business goals and growth", 4, models.CategoryBusiness),
			}},
			{ID: 4, Question: "How do you prefer to communicate?", Options: []models.Option{
				opt("Through presentations and meetings", 4, models.CategoryBusiness),
				opt("One-on-one conversations", 3, models.CategoryHealthcare),
				opt("Visual and creative mediums", 4, models.CategoryCreative),
				opt("Written documentation and reports", 3, models.CategoryTechnology),
			}},
			{ID: 5, Question: "What type of challenges excite you?", Options: []models.Option{
				opt("Technical and analytical problems", 4, models.CategoryTechnology),
				opt("Interpersonal and emotional challenges", 4, models.CategoryHealthcare),
				opt("Artistic and design challenges", 4, models.CategoryCreative),
				opt("Strategic and business challenges", 4, models.CategoryBusiness),
			}},
		},
	}}
}
