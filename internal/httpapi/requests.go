package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fyyur/internal/models"
)

const maxFormMemory = 1 << 20

// formRequest is a request body that can also arrive as an HTML form post.
type formRequest interface {
	fromForm(form url.Values) error
}

// decodeBody fills dst from a JSON body, or from the posted form fields when
// the request is form encoded.
func decodeBody(r *http.Request, dst formRequest) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return &ValidationError{Field: "body", Message: "invalid form body"}
		}
		return dst.fromForm(r.PostForm)
	default:
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return &ValidationError{Field: "body", Message: "invalid request body"}
		}
		return nil
	}
}

// yesNo accepts a JSON boolean or the "Yes"/"No" strings posted by the HTML
// forms.
type yesNo bool

func (b *yesNo) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = yesNo(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("expected a boolean or Yes/No")
	}
	*b = yesNo(parseYes(s))
	return nil
}

func parseYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "on", "1":
		return true
	}
	return false
}

// flexInt accepts a JSON number or a numeric string, since select fields
// post their values as text.
type flexInt int64

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("expected an integer, got %s", data)
	}
	*n = flexInt(v)
	return nil
}

type venueRequest struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Address            string   `json:"address"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	Website            string   `json:"website"`
	WebsiteLink        string   `json:"website_link"`
	SeekingTalent      yesNo    `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
}

func (req *venueRequest) fromForm(form url.Values) error {
	req.Name = form.Get("name")
	req.City = form.Get("city")
	req.State = form.Get("state")
	req.Address = form.Get("address")
	req.Phone = form.Get("phone")
	req.Genres = form["genres"]
	req.ImageLink = form.Get("image_link")
	req.FacebookLink = form.Get("facebook_link")
	req.Website = form.Get("website")
	req.WebsiteLink = form.Get("website_link")
	req.SeekingTalent = yesNo(parseYes(form.Get("seeking_talent")))
	req.SeekingDescription = form.Get("seeking_description")
	return nil
}

func (req *venueRequest) validate() error {
	trimAll(&req.Name, &req.City, &req.State, &req.Address, &req.Phone,
		&req.ImageLink, &req.FacebookLink, &req.Website, &req.WebsiteLink, &req.SeekingDescription)

	// website_link is the name the HTML forms post.
	if req.Website == "" {
		req.Website = req.WebsiteLink
	}

	var errs validationErrors
	requireField(&errs, "name", req.Name)
	requireField(&errs, "city", req.City)
	requireField(&errs, "address", req.Address)
	checkState(&errs, req.State)
	checkPhone(&errs, req.Phone)
	checkGenres(&errs, req.Genres)
	checkURL(&errs, "image_link", req.ImageLink)
	checkURL(&errs, "facebook_link", req.FacebookLink)
	checkURL(&errs, "website", req.Website)
	return errs.err()
}

func (req *venueRequest) toModel() (*models.Venue, models.Location) {
	return &models.Venue{
			Name:               req.Name,
			Genres:             req.Genres,
			Address:            req.Address,
			Phone:              req.Phone,
			Website:            req.Website,
			FacebookLink:       req.FacebookLink,
			ImageLink:          req.ImageLink,
			SeekingTalent:      bool(req.SeekingTalent),
			SeekingDescription: req.SeekingDescription,
		},
		models.Location{City: req.City, State: req.State}
}

type artistRequest struct {
	Name               string   `json:"name"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Genres             []string `json:"genres"`
	ImageLink          string   `json:"image_link"`
	FacebookLink       string   `json:"facebook_link"`
	Website            string   `json:"website"`
	WebsiteLink        string   `json:"website_link"`
	SeekingVenue       yesNo    `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
	AvailableFrom      *flexInt `json:"available_from"`
	AvailableTill      *flexInt `json:"available_till"`
}

func (req *artistRequest) fromForm(form url.Values) error {
	req.Name = form.Get("name")
	req.City = form.Get("city")
	req.State = form.Get("state")
	req.Phone = form.Get("phone")
	req.Genres = form["genres"]
	req.ImageLink = form.Get("image_link")
	req.FacebookLink = form.Get("facebook_link")
	req.Website = form.Get("website")
	req.WebsiteLink = form.Get("website_link")
	req.SeekingVenue = yesNo(parseYes(form.Get("seeking_venue")))
	req.SeekingDescription = form.Get("seeking_description")

	var errs validationErrors
	req.AvailableFrom = formHour(&errs, form, "available_from")
	req.AvailableTill = formHour(&errs, form, "available_till")
	return errs.err()
}

func (req *artistRequest) validate() error {
	trimAll(&req.Name, &req.City, &req.State, &req.Phone,
		&req.ImageLink, &req.FacebookLink, &req.Website, &req.WebsiteLink, &req.SeekingDescription)

	// website_link is the name the HTML forms post.
	if req.Website == "" {
		req.Website = req.WebsiteLink
	}

	var errs validationErrors
	requireField(&errs, "name", req.Name)
	requireField(&errs, "city", req.City)
	checkState(&errs, req.State)
	checkPhone(&errs, req.Phone)
	checkGenres(&errs, req.Genres)
	checkURL(&errs, "image_link", req.ImageLink)
	checkURL(&errs, "facebook_link", req.FacebookLink)
	checkURL(&errs, "website", req.Website)
	checkHour(&errs, "available_from", req.AvailableFrom)
	checkHour(&errs, "available_till", req.AvailableTill)
	return errs.err()
}

func (req *artistRequest) toModel() (*models.Artist, models.Location) {
	from, till := models.DefaultAvailableFrom, models.DefaultAvailableTill
	if req.AvailableFrom != nil {
		from = int(*req.AvailableFrom)
	}
	if req.AvailableTill != nil {
		till = int(*req.AvailableTill)
	}

	return &models.Artist{
			Name:               req.Name,
			Phone:              req.Phone,
			Website:            req.Website,
			Genres:             req.Genres,
			ImageLink:          req.ImageLink,
			FacebookLink:       req.FacebookLink,
			SeekingVenue:       bool(req.SeekingVenue),
			SeekingDescription: req.SeekingDescription,
			AvailableFrom:      from,
			AvailableTill:      till,
		},
		models.Location{City: req.City, State: req.State}
}

type showRequest struct {
	ArtistID  flexInt `json:"artist_id"`
	VenueID   flexInt `json:"venue_id"`
	StartTime string  `json:"start_time"`
}

func (req *showRequest) fromForm(form url.Values) error {
	var errs validationErrors
	req.ArtistID = formID(&errs, form, "artist_id")
	req.VenueID = formID(&errs, form, "venue_id")
	req.StartTime = form.Get("start_time")
	return errs.err()
}

// toModel validates the request and converts it to a show.
func (req *showRequest) toModel() (*models.Show, error) {
	var errs validationErrors
	if req.ArtistID <= 0 {
		errs.add("artist_id", "is required")
	}
	if req.VenueID <= 0 {
		errs.add("venue_id", "is required")
	}

	start, err := models.ParseStartTime(req.StartTime)
	if err != nil {
		errs.add("start_time", "must be a date and time such as 2035-04-01 20:00:00")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	return &models.Show{
		ArtistID:  int64(req.ArtistID),
		VenueID:   int64(req.VenueID),
		StartTime: start,
	}, nil
}

type searchRequest struct {
	SearchTerm string `json:"search_term"`
}

func (req *searchRequest) fromForm(form url.Values) error {
	req.SearchTerm = form.Get("search_term")
	return nil
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func requireField(errs *validationErrors, field, value string) {
	if value == "" {
		errs.add(field, "is required")
	}
}

func checkState(errs *validationErrors, state string) {
	switch {
	case state == "":
		errs.add("state", "is required")
	case !models.IsValidState(state):
		errs.add("state", "must be a two letter US state code")
	}
}

func checkPhone(errs *validationErrors, phone string) {
	switch {
	case phone == "":
		errs.add("phone", "is required")
	case !strings.HasPrefix(phone, "+1"):
		errs.add("phone", "must start with +1")
	}
}

func checkGenres(errs *validationErrors, genres []string) {
	if len(genres) == 0 {
		errs.add("genres", "is required")
		return
	}
	for _, g := range genres {
		if !models.IsValidGenre(g) {
			errs.add("genres", fmt.Sprintf("unknown genre %q", g))
			return
		}
	}
}

func checkURL(errs *validationErrors, field, raw string) {
	if raw == "" {
		return
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs.add(field, "must be an absolute http(s) URL")
	}
}

func checkHour(errs *validationErrors, field string, hour *flexInt) {
	if hour != nil && (*hour < 0 || *hour > 23) {
		errs.add(field, "must be an hour between 0 and 23")
	}
}

func formHour(errs *validationErrors, form url.Values, field string) *flexInt {
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		errs.add(field, "must be an hour between 0 and 23")
		return nil
	}
	hour := flexInt(v)
	return &hour
}

func formID(errs *validationErrors, form url.Values, field string) flexInt {
	raw := strings.TrimSpace(form.Get(field))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		errs.add(field, "must be a number")
		return 0
	}
	return flexInt(v)
}
