package model

import "strings"

// Fallback literals used when the upstream omits a field. The generation
// prompt interpolates these, so they must be stable strings, never empty.
const (
	FallbackName        = "Professional"
	FallbackUnspecified = "Not specified"
	linkedinProfileBase = "https://linkedin.com/in/"
)

// Profile is the canonical normalized profile shape returned to callers,
// regardless of which upstream source it came from.
type Profile struct {
	ProviderID        string           `json:"provider_id,omitempty"`
	PublicIdentifier  string           `json:"public_identifier,omitempty"`
	FirstName         string           `json:"first_name,omitempty"`
	LastName          string           `json:"last_name,omitempty"`
	Name              string           `json:"name"`
	JobTitle          string           `json:"job_title"`
	Company           string           `json:"company"`
	Industry          string           `json:"industry"`
	Location          string           `json:"location,omitempty"`
	ProfilePictureURL string           `json:"profile_picture_url,omitempty"`
	Headline          string           `json:"headline,omitempty"`
	Summary           string           `json:"summary,omitempty"`
	WorkExperience    []WorkExperience `json:"work_experience,omitempty"`
	Education         []Education      `json:"education,omitempty"`
	Skills            []string         `json:"skills,omitempty"`
	ConnectionsCount  *int             `json:"connections_count,omitempty"`
	PublicProfileURL  string           `json:"public_profile_url,omitempty"`
}

type WorkExperience struct {
	Company  string   `json:"company,omitempty"`
	Position string   `json:"position,omitempty"`
	Skills   []string `json:"skills,omitempty"`
}

type Education struct {
	School string `json:"school,omitempty"`
	Degree string `json:"degree,omitempty"`
}

// OwnAccountSource is the gateway's "account" shape: metadata about the
// caller's own linked account. Only a handful of profile fields exist here;
// company, industry, location, picture and summary are simply not available
// from this endpoint. The normalizer leaves them empty rather than guessing.
type OwnAccountSource struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ConnectionParams struct {
		IM struct {
			Username         string `json:"username"`
			Headline         string `json:"headline"`
			PublicIdentifier string `json:"publicIdentifier"`
		} `json:"im"`
	} `json:"connection_params"`
}

// Normalize maps an own-account payload into the canonical Profile.
func (s OwnAccountSource) Normalize() Profile {
	name := s.Name
	if name == "" {
		name = s.ConnectionParams.IM.Username
	}
	if name == "" {
		name = FallbackName
	}

	p := Profile{
		PublicIdentifier: s.ConnectionParams.IM.PublicIdentifier,
		Name:             name,
		JobTitle:         s.ConnectionParams.IM.Headline,
		Headline:         s.ConnectionParams.IM.Headline,
	}
	if p.PublicIdentifier != "" {
		p.PublicProfileURL = linkedinProfileBase + p.PublicIdentifier
	}
	return p
}

// SearchedUserSource is the gateway's "user" shape returned by a lookup of
// somebody else's profile. It is much richer than OwnAccountSource.
type SearchedUserSource struct {
	ProviderID            string           `json:"provider_id"`
	PublicIdentifier      string           `json:"public_identifier"`
	FirstName             string           `json:"first_name"`
	LastName              string           `json:"last_name"`
	Headline              string           `json:"headline"`
	Summary               string           `json:"summary"`
	Location              string           `json:"location"`
	ProfilePictureURL     string           `json:"profile_picture_url"`
	ProfilePictureURLLarge string          `json:"profile_picture_url_large"`
	WorkExperience        []WorkExperience `json:"work_experience"`
	Education             []Education      `json:"education"`
	Skills                []string         `json:"skills"`
	ConnectionsCount      *int             `json:"connections_count"`
	PublicProfileURL      string           `json:"public_profile_url"`
}

// Normalize maps a searched-user payload into the canonical Profile.
//
// company and job_title come from the most recent work experience entry.
// industry is a heuristic: the joined skill names of that entry. It is
// deliberately overloaded with skills text because the upstream exposes no
// industry field, and the generation prompt tolerates it.
func (s SearchedUserSource) Normalize() Profile {
	name := strings.TrimSpace(strings.TrimSpace(s.FirstName) + " " + strings.TrimSpace(s.LastName))
	if name == "" {
		name = FallbackName
	}

	company := FallbackUnspecified
	jobTitle := FallbackUnspecified
	industry := FallbackUnspecified
	if len(s.WorkExperience) > 0 {
		latest := s.WorkExperience[0]
		if latest.Company != "" {
			company = latest.Company
		}
		if latest.Position != "" {
			jobTitle = latest.Position
		}
		if len(latest.Skills) > 0 {
			industry = strings.Join(latest.Skills, ", ")
		}
	}
	if jobTitle == FallbackUnspecified && s.Headline != "" {
		jobTitle = s.Headline
	}

	return Profile{
		ProviderID:        s.ProviderID,
		PublicIdentifier:  s.PublicIdentifier,
		FirstName:         s.FirstName,
		LastName:          s.LastName,
		Name:              name,
		JobTitle:          jobTitle,
		Company:           company,
		Industry:          industry,
		Location:          s.Location,
		ProfilePictureURL: s.ProfilePictureURL,
		Headline:          s.Headline,
		Summary:           s.Summary,
		WorkExperience:    s.WorkExperience,
		Education:         s.Education,
		Skills:            s.Skills,
		ConnectionsCount:  s.ConnectionsCount,
		PublicProfileURL:  s.PublicProfileURL,
	}
}
