// Package sitegen turns a practice-info form into a populated landing-page
// document and renders it as a self-contained HTML page. Generation and
// rendering are pure: no storage, no network, deterministic output (the
// rendered footer year excepted).
package sitegen

import (
	"fmt"
	"strings"
)

// TemplateCategory selects which generator produces the site document.
// Callers that already know the category pass it directly; substring
// inference from opaque template ids is kept only for legacy ids.
type TemplateCategory string

const (
	CategoryGeneral    TemplateCategory = "general"
	CategorySpecialist TemplateCategory = "specialist"
	CategoryPediatric  TemplateCategory = "pediatric"
	CategoryClinic     TemplateCategory = "clinic"
)

// PracticeInfo is the onboarding form input. Name and Specialty are
// required; the rest fall back to placeholder text when absent.
type PracticeInfo struct {
	Name      string `json:"name" validate:"required"`
	Specialty string `json:"specialty" validate:"required"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

// SiteContent is the generated page content.
type SiteContent struct {
	Hero         HeroSection     `json:"hero"`
	About        AboutSection    `json:"about"`
	Services     ServicesSection `json:"services"`
	Testimonials []Testimonial   `json:"testimonials"`
	Contact      ContactSection  `json:"contact"`
}

type HeroSection struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
	CTAText    string `json:"cta_text"`
}

type AboutSection struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type ServicesSection struct {
	Title string        `json:"title"`
	Items []ServiceItem `json:"items"`
}

type ServiceItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Testimonial struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

type ContactSection struct {
	Title   string `json:"title"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Hours   string `json:"hours"`
}

// SiteSettings is the generated styling document.
type SiteSettings struct {
	Colors      Palette     `json:"colors"`
	Fonts       FontPairing `json:"fonts"`
	SocialLinks SocialLinks `json:"social_links"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// SiteDocument bundles content and settings for one generated site.
type SiteDocument struct {
	Content  SiteContent  `json:"content"`
	Settings SiteSettings `json:"settings"`
}

// Placeholder strings for optional fields the user has not filled in yet.
const (
	placeholderAddress = "Please update your practice address"
	placeholderPhone   = "Please update your phone number"
	placeholderEmail   = "Please update your contact email"
	defaultHours       = "Mon-Fri 9:00-17:00"
)

// CategoryFromTemplateID infers the generator category from an opaque
// template id by substring markers. Unrecognized ids fall back to the
// general-practice category; this is never an error.
func CategoryFromTemplateID(templateID string) TemplateCategory {
	id := strings.ToLower(templateID)
	switch {
	case strings.Contains(id, "specialist"):
		return CategorySpecialist
	case strings.Contains(id, "pediatric"):
		return CategoryPediatric
	case strings.Contains(id, "clinic"):
		return CategoryClinic
	default:
		return CategoryGeneral
	}
}

// Generate produces the site document for templateID. It never fails: an
// unrecognized id uses the general-practice generator and missing optional
// fields become placeholder text.
func Generate(templateID string, info PracticeInfo) SiteDocument {
	return GenerateForCategory(CategoryFromTemplateID(templateID), info)
}

// GenerateForCategory produces the site document for an explicitly chosen
// category.
func GenerateForCategory(category TemplateCategory, info PracticeInfo) SiteDocument {
	switch category {
	case CategorySpecialist:
		return generateSpecialist(info)
	case CategoryPediatric:
		return generatePediatric(info)
	case CategoryClinic:
		return generateClinic(info)
	default:
		return generateGeneral(info)
	}
}

func contactFor(info PracticeInfo) ContactSection {
	contact := ContactSection{
		Title:   "Get in Touch",
		Address: info.Address,
		Phone:   info.Phone,
		Email:   info.Email,
		Hours:   defaultHours,
	}
	if contact.Address == "" {
		contact.Address = placeholderAddress
	}
	if contact.Phone == "" {
		contact.Phone = placeholderPhone
	}
	if contact.Email == "" {
		contact.Email = placeholderEmail
	}
	return contact
}

func generateGeneral(info PracticeInfo) SiteDocument {
	return SiteDocument{
		Content: SiteContent{
			Hero: HeroSection{
				Heading:    fmt.Sprintf("Welcome to %s", info.Name),
				Subheading: "Trusted general practice care for you and your family",
				CTAText:    "Book an Appointment",
			},
			About: AboutSection{
				Title: fmt.Sprintf("About %s", info.Name),
				Text: fmt.Sprintf("%s provides comprehensive %s services with a focus on long-term health and prevention. "+
					"Our team takes the time to know every patient.", info.Name, info.Specialty),
			},
			Services: ServicesSection{
				Title: "Our Services",
				Items: []ServiceItem{
					{Name: "Preventive Checkups", Description: "Regular health assessments and screenings for all ages."},
					{Name: "Chronic Care Management", Description: "Ongoing support for diabetes, hypertension and other long-term conditions."},
					{Name: "Vaccinations", Description: "Routine and seasonal immunizations for the whole family."},
					{Name: "Minor Procedures", Description: "In-office treatment of minor injuries and conditions."},
				},
			},
			Testimonials: []Testimonial{
				{Quote: fmt.Sprintf("The team at %s treats us like family. I wouldn't go anywhere else.", info.Name), Author: "Maria S."},
				{Quote: "Finally a practice that listens. Appointments are always on time.", Author: "James R."},
			},
			Contact: contactFor(info),
		},
		Settings: SiteSettings{
			Colors: PaletteGeneral,
			Fonts:  FontsGeneral,
		},
	}
}

func generateSpecialist(info PracticeInfo) SiteDocument {
	return SiteDocument{
		Content: SiteContent{
			Hero: HeroSection{
				Heading:    fmt.Sprintf("Welcome to %s", info.Name),
				Subheading: fmt.Sprintf("Specialist %s care you can rely on", info.Specialty),
				CTAText:    "Request a Consultation",
			},
			About: AboutSection{
				Title: "Expertise That Matters",
				Text: fmt.Sprintf("%s is a dedicated %s practice combining advanced diagnostics with "+
					"personal, unhurried consultations.", info.Name, info.Specialty),
			},
			Services: ServicesSection{
				Title: "Specialist Services",
				Items: []ServiceItem{
					{Name: "Consultations", Description: fmt.Sprintf("In-depth %s consultations with a full review of your history.", info.Specialty)},
					{Name: "Advanced Diagnostics", Description: "Modern imaging and laboratory workups, interpreted by a specialist."},
					{Name: "Second Opinions", Description: "Independent review of existing diagnoses and treatment plans."},
					{Name: "Follow-up Care", Description: "Structured follow-up so nothing falls through the cracks."},
				},
			},
			Testimonials: []Testimonial{
				{Quote: fmt.Sprintf("%s explained everything clearly and the treatment worked.", info.Name), Author: "Patricia L."},
				{Quote: "Thorough, precise and genuinely caring. Highly recommended.", Author: "Ahmed K."},
			},
			Contact: contactFor(info),
		},
		Settings: SiteSettings{
			Colors: PaletteSpecialist,
			Fonts:  FontsSpecialist,
		},
	}
}

func generatePediatric(info PracticeInfo) SiteDocument {
	return SiteDocument{
		Content: SiteContent{
			Hero: HeroSection{
				Heading:    fmt.Sprintf("Welcome to %s", info.Name),
				Subheading: fmt.Sprintf("Friendly %s care for kids and teens", info.Specialty),
				CTAText:    "Schedule a Visit",
			},
			About: AboutSection{
				Title: "Care That Grows With Your Child",
				Text: fmt.Sprintf("At %s we make every visit calm and kid-friendly, from newborn checkups "+
					"to teenage sports physicals.", info.Name),
			},
			Services: ServicesSection{
				Title: "For Your Little Ones",
				Items: []ServiceItem{
					{Name: "Well-Child Visits", Description: "Growth and development checkups at every stage."},
					{Name: "Immunizations", Description: "Complete childhood vaccination schedules, gently done."},
					{Name: "Sick Visits", Description: "Same-day appointments when your child is unwell."},
					{Name: "Developmental Screening", Description: "Early identification of speech, motor and learning concerns."},
				},
			},
			Testimonials: []Testimonial{
				{Quote: fmt.Sprintf("My kids actually look forward to visiting %s.", info.Name), Author: "Laura B."},
				{Quote: "Patient, warm and wonderful with anxious toddlers.", Author: "Daniel M."},
			},
			Contact: contactFor(info),
		},
		Settings: SiteSettings{
			Colors: PalettePediatric,
			Fonts:  FontsPediatric,
		},
	}
}

func generateClinic(info PracticeInfo) SiteDocument {
	return SiteDocument{
		Content: SiteContent{
			Hero: HeroSection{
				Heading:    fmt.Sprintf("Welcome to %s", info.Name),
				Subheading: fmt.Sprintf("Walk-in and scheduled %s services under one roof", info.Specialty),
				CTAText:    "See Our Services",
			},
			About: AboutSection{
				Title: fmt.Sprintf("About %s", info.Name),
				Text: fmt.Sprintf("%s is a full-service clinic offering %s and multidisciplinary care, "+
					"with extended hours and on-site diagnostics.", info.Name, info.Specialty),
			},
			Services: ServicesSection{
				Title: "Clinic Services",
				Items: []ServiceItem{
					{Name: "Walk-in Care", Description: "No appointment needed for urgent, non-emergency concerns."},
					{Name: "Laboratory & Imaging", Description: "On-site labs and imaging with rapid results."},
					{Name: "Multidisciplinary Teams", Description: "Physicians, nurses and therapists working together."},
					{Name: "Occupational Health", Description: "Workplace medicals, screenings and certifications."},
				},
			},
			Testimonials: []Testimonial{
				{Quote: fmt.Sprintf("In and out of %s in under an hour, results the same day.", info.Name), Author: "Sofia T."},
				{Quote: "Everything in one place. The staff are endlessly helpful.", Author: "Robert N."},
			},
			Contact: contactFor(info),
		},
		Settings: SiteSettings{
			Colors: PaletteClinic,
			Fonts:  FontsClinic,
		},
	}
}
