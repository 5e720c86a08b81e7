package sitegen

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// landingTemplate is parsed once. html/template's contextual escaping is the
// injection hardening for user-supplied practice fields: whatever the owner
// types ends up as text, never as markup.
var landingTemplate = template.Must(template.New("landing").Parse(landingHTML))

type renderContext struct {
	PracticeName string
	Specialty    string
	Description  string
	Keywords     string
	Content      SiteContent
	Settings     SiteSettings
	Year         int
	HasSocial    bool
}

// Render serializes a site document into one self-contained HTML document:
// inlined styles driven by the settings palette and fonts, SEO and social
// meta tags, and the full section structure. Output is deterministic for
// fixed inputs except for the footer year.
func Render(doc SiteDocument, practiceName, specialty string) (string, error) {
	links := doc.Settings.SocialLinks
	ctx := renderContext{
		PracticeName: practiceName,
		Specialty:    specialty,
		Description:  doc.Content.Hero.Subheading,
		Keywords:     fmt.Sprintf("%s, %s, medical practice, appointments", practiceName, specialty),
		Content:      doc.Content,
		Settings:     doc.Settings,
		Year:         time.Now().Year(),
		HasSocial:    links.Facebook != "" || links.Instagram != "" || links.LinkedIn != "",
	}

	var b strings.Builder
	if err := landingTemplate.Execute(&b, ctx); err != nil {
		return "", fmt.Errorf("failed to render landing page: %w", err)
	}
	return b.String(), nil
}

const landingHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.PracticeName}} — {{.Specialty}}</title>
<meta name="description" content="{{.Description}}">
<meta name="keywords" content="{{.Keywords}}">
<meta property="og:title" content="{{.PracticeName}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:type" content="website">
<meta name="twitter:card" content="summary">
<meta name="twitter:title" content="{{.PracticeName}}">
<meta name="twitter:description" content="{{.Description}}">
<style>
:root {
  --color-primary: {{.Settings.Colors.Primary}};
  --color-secondary: {{.Settings.Colors.Secondary}};
  --color-accent: {{.Settings.Colors.Accent}};
  --font-heading: {{.Settings.Fonts.Heading}};
  --font-body: {{.Settings.Fonts.Body}};
}
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: var(--font-body); color: #1f2937; line-height: 1.6; }
h1, h2, h3 { font-family: var(--font-heading); }
.hero { background: linear-gradient(135deg, var(--color-primary), var(--color-secondary)); color: #fff; padding: 6rem 1.5rem; text-align: center; }
.hero h1 { font-size: 2.75rem; margin-bottom: 1rem; }
.hero p { font-size: 1.25rem; opacity: 0.9; }
.hero .cta { display: inline-block; margin-top: 2rem; padding: 0.9rem 2.2rem; background: var(--color-accent); color: #111827; border-radius: 999px; text-decoration: none; font-weight: 600; }
section { padding: 4rem 1.5rem; max-width: 64rem; margin: 0 auto; }
section h2 { color: var(--color-secondary); font-size: 2rem; margin-bottom: 1.5rem; text-align: center; }
.services-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(14rem, 1fr)); gap: 1.5rem; }
.service { border: 1px solid #e5e7eb; border-top: 4px solid var(--color-primary); border-radius: 0.5rem; padding: 1.5rem; }
.service h3 { color: var(--color-primary); margin-bottom: 0.5rem; }
.testimonials blockquote { border-left: 4px solid var(--color-accent); padding: 1rem 1.5rem; margin: 1.5rem 0; font-style: italic; background: #f9fafb; }
.testimonials cite { display: block; margin-top: 0.5rem; font-style: normal; font-weight: 600; color: var(--color-secondary); }
.contact dl { display: grid; grid-template-columns: max-content 1fr; gap: 0.5rem 1.5rem; }
.contact dt { font-weight: 600; color: var(--color-secondary); }
footer { background: #111827; color: #9ca3af; text-align: center; padding: 2rem 1.5rem; }
footer a { color: var(--color-accent); text-decoration: none; margin: 0 0.5rem; }
</style>
</head>
<body>
<header class="hero">
  <h1>{{.Content.Hero.Heading}}</h1>
  <p>{{.Content.Hero.Subheading}}</p>
  <a class="cta" href="#contact">{{.Content.Hero.CTAText}}</a>
</header>
<section class="about">
  <h2>{{.Content.About.Title}}</h2>
  <p>{{.Content.About.Text}}</p>
</section>
<section class="services">
  <h2>{{.Content.Services.Title}}</h2>
  <div class="services-grid">
  {{range .Content.Services.Items}}<div class="service">
    <h3>{{.Name}}</h3>
    <p>{{.Description}}</p>
  </div>
  {{end}}</div>
</section>
<section class="testimonials">
  <h2>What Patients Say</h2>
  {{range .Content.Testimonials}}<blockquote>
    {{.Quote}}
    <cite>{{.Author}}</cite>
  </blockquote>
  {{end}}</section>
<section class="contact" id="contact">
  <h2>{{.Content.Contact.Title}}</h2>
  <dl>
    <dt>Address</dt><dd>{{.Content.Contact.Address}}</dd>
    <dt>Phone</dt><dd>{{.Content.Contact.Phone}}</dd>
    <dt>Email</dt><dd>{{.Content.Contact.Email}}</dd>
    <dt>Hours</dt><dd>{{.Content.Contact.Hours}}</dd>
  </dl>
</section>
<footer>
  <p>&copy; {{.Year}} {{.PracticeName}}. All rights reserved.</p>
  {{if .HasSocial}}<p>
    {{if .Settings.SocialLinks.Facebook}}<a href="{{.Settings.SocialLinks.Facebook}}">Facebook</a>{{end}}
    {{if .Settings.SocialLinks.Instagram}}<a href="{{.Settings.SocialLinks.Instagram}}">Instagram</a>{{end}}
    {{if .Settings.SocialLinks.LinkedIn}}<a href="{{.Settings.SocialLinks.LinkedIn}}">LinkedIn</a>{{end}}
  </p>{{end}}
</footer>
</body>
</html>
`
