package sitegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFromTemplateID(t *testing.T) {
	tests := []struct {
		templateID string
		expected   TemplateCategory
	}{
		{"specialist-42", CategorySpecialist},
		{"SPECIALIST-MODERN", CategorySpecialist},
		{"pediatric-bright", CategoryPediatric},
		{"clinic-multi", CategoryClinic},
		{"general-1", CategoryGeneral},
		{"xyz-123", CategoryGeneral},
		{"", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.templateID, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoryFromTemplateID(tt.templateID))
		})
	}
}

func TestGenerate_Specialist(t *testing.T) {
	info := PracticeInfo{
		Name:      "Acme Clinic",
		Specialty: "Cardiology",
		Address:   "12 Harley Street",
		Phone:     "+44 20 7946 0000",
		Email:     "hello@acme.example",
	}

	doc := Generate("specialist-42", info)

	assert.Equal(t, "Welcome to Acme Clinic", doc.Content.Hero.Heading)
	assert.Equal(t, "Specialist Cardiology care you can rely on", doc.Content.Hero.Subheading)
	assert.Equal(t, PaletteSpecialist, doc.Settings.Colors)
	assert.Equal(t, FontsSpecialist, doc.Settings.Fonts)
	assert.Equal(t, "12 Harley Street", doc.Content.Contact.Address)
	assert.Equal(t, "+44 20 7946 0000", doc.Content.Contact.Phone)
	assert.Equal(t, "hello@acme.example", doc.Content.Contact.Email)
	assert.NotEmpty(t, doc.Content.Services.Items)
	assert.NotEmpty(t, doc.Content.Testimonials)
}

func TestGenerate_UnknownTemplateFallsBackToGeneral(t *testing.T) {
	info := PracticeInfo{Name: "Acme Clinic", Specialty: "Family Medicine"}

	doc := Generate("xyz-123", info)

	assert.Equal(t, "Welcome to Acme Clinic", doc.Content.Hero.Heading)
	assert.Equal(t, "Trusted general practice care for you and your family", doc.Content.Hero.Subheading)
	assert.Equal(t, PaletteGeneral, doc.Settings.Colors)
}

func TestGenerate_MissingOptionalFieldsGetPlaceholders(t *testing.T) {
	info := PracticeInfo{Name: "Acme Clinic", Specialty: "Dermatology"}

	doc := Generate("general-1", info)

	assert.Equal(t, placeholderAddress, doc.Content.Contact.Address)
	assert.Equal(t, placeholderPhone, doc.Content.Contact.Phone)
	assert.Equal(t, placeholderEmail, doc.Content.Contact.Email)
	assert.Equal(t, defaultHours, doc.Content.Contact.Hours)
}

func TestGenerate_Deterministic(t *testing.T) {
	info := PracticeInfo{Name: "Acme Clinic", Specialty: "Cardiology"}

	first := Generate("pediatric-1", info)
	second := Generate("pediatric-1", info)
	assert.Equal(t, first, second)
}

func TestGenerateForCategory_EveryCategoryProducesDistinctSettings(t *testing.T) {
	info := PracticeInfo{Name: "Acme Clinic", Specialty: "Cardiology"}

	seen := map[Palette]TemplateCategory{}
	for _, cat := range []TemplateCategory{CategoryGeneral, CategorySpecialist, CategoryPediatric, CategoryClinic} {
		doc := GenerateForCategory(cat, info)
		prev, dup := seen[doc.Settings.Colors]
		assert.False(t, dup, "%s and %s share a palette", prev, cat)
		seen[doc.Settings.Colors] = cat
	}
}
