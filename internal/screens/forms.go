package screens

import (
	"context"
	"html/template"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"

	"github.com/pthm/geoadmin/internal/form"
	"github.com/pthm/geoadmin/internal/routes"
	"github.com/pthm/geoadmin/internal/view"
)

// formView is what every entity form template receives.
type formView[I any] struct {
	Title  string
	Input  I
	Error  string
	Save   template.HTMLAttr
	Cancel string
}

// submitFailed keeps the entered input and shows message. Nothing is
// sent to the backend.
func submitFailed[P any](ctx context.Context, props P, message string) view.Result[P] {
	zerolog.Ctx(ctx).Warn().Str("reason", message).Msg("form rejected")
	return view.OK(props)
}

// CountryFormProps drives the add and edit country form.
//
// CountryID is zero when adding. NationID is set when the form was reached
// from a nation's country list; it decides where Save and Cancel go, and
// the new country is created under that nation.
type CountryFormProps struct {
	CountryID int64              `hx:"country,omitempty"`
	NationID  int64              `hx:"nation,omitempty"`
	Input     *form.CountryInput `hx:"-"`
	Error     string             `hx:"-"`
}

type CountryForm struct {
	*view.Component[CountryFormProps]
	backend Backend
}

// NewCountryForm builds the add/edit country form. Form tokens carry the
// parent context of the edit, so they are encrypted rather than signed.
func NewCountryForm(b Backend) *CountryForm {
	c := &CountryForm{
		Component: view.New[CountryFormProps]("countryform").Sensitive(),
		backend:   b,
	}
	c.Action("save", c.handleSave)
	c.Bind(c)
	return c
}

// Hydrate prefills an edit form from the backend unless the request
// already carries the user's input.
func (c *CountryForm) Hydrate(ctx context.Context, props *CountryFormProps) error {
	if props.Input != nil {
		return nil
	}
	props.Input = &form.CountryInput{}
	if props.CountryID == 0 {
		return nil
	}
	country, err := c.backend.GetCountry(ctx, props.CountryID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("country", props.CountryID).Msg("prefill country form")
		props.Error = "Failed to load country data"
		return nil
	}
	in := form.CountryInputFrom(country)
	props.Input = &in
	return nil
}

func (c *CountryForm) Render(ctx context.Context, props CountryFormProps) templ.Component {
	title := "Add Country"
	if props.CountryID != 0 {
		title = "Edit Country"
	}
	return render("country_form", formView[form.CountryInput]{
		Title: title,
		Input: *props.Input,
		Error: props.Error,
		Save: c.Call("save", CountryFormProps{CountryID: props.CountryID, NationID: props.NationID}).
			Target("#country-form").
			Indicator("#country-form .htmx-indicator").
			HTML(),
		Cancel: routes.CountryHome(props.NationID),
	})
}

func (c *CountryForm) handleSave(ctx context.Context, props CountryFormProps, r *http.Request) view.Result[CountryFormProps] {
	in := form.ParseCountry(r)
	props.Input = &in

	country, err := in.Validate()
	if err != nil {
		props.Error = err.Error()
		return submitFailed(ctx, props, props.Error)
	}

	if props.CountryID != 0 {
		err = c.backend.UpdateCountry(ctx, props.CountryID, country)
	} else {
		err = c.backend.CreateCountry(ctx, country, props.NationID)
	}
	if err != nil {
		verb := "add"
		if props.CountryID != 0 {
			verb = "update"
		}
		zerolog.Ctx(ctx).Error().Err(err).Msgf("%s country", verb)
		props.Error = "Failed to " + verb + " country: " + err.Error()
		return view.OK(props).Flash(view.FlashError, "Failed to "+verb+" country")
	}

	zerolog.Ctx(ctx).Info().Int64("country", props.CountryID).Int64("nation", props.NationID).Msg("country saved")
	return view.Navigate[CountryFormProps](routes.CountryHome(props.NationID))
}

// CityFormProps drives the add and edit city form.
//
// Adding requires CountryID. Editing requires CityID; CountryID is then
// optional and only decides where Save and Cancel go.
type CityFormProps struct {
	CityID    int64           `hx:"city,omitempty"`
	CountryID int64           `hx:"country,omitempty"`
	Input     *form.CityInput `hx:"-"`
	Error     string          `hx:"-"`
}

type CityForm struct {
	*view.Component[CityFormProps]
	backend Backend
}

func NewCityForm(b Backend) *CityForm {
	c := &CityForm{
		Component: view.New[CityFormProps]("cityform").Sensitive(),
		backend:   b,
	}
	c.Action("save", c.handleSave)
	c.Bind(c)
	return c
}

func (c *CityForm) Hydrate(ctx context.Context, props *CityFormProps) error {
	if props.Input != nil {
		return nil
	}
	props.Input = &form.CityInput{}
	if props.CityID == 0 {
		return nil
	}
	city, err := c.backend.GetCity(ctx, props.CityID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("city", props.CityID).Msg("prefill city form")
		props.Error = "Failed to load city data"
		return nil
	}
	in := form.CityInputFrom(city)
	props.Input = &in
	return nil
}

func (c *CityForm) Render(ctx context.Context, props CityFormProps) templ.Component {
	title := "Add City"
	if props.CityID != 0 {
		title = "Edit City"
	}
	return render("city_form", formView[form.CityInput]{
		Title: title,
		Input: *props.Input,
		Error: props.Error,
		Save: c.Call("save", CityFormProps{CityID: props.CityID, CountryID: props.CountryID}).
			Target("#city-form").
			Indicator("#city-form .htmx-indicator").
			HTML(),
		Cancel: routes.CityHome(props.CountryID),
	})
}

func (c *CityForm) handleSave(ctx context.Context, props CityFormProps, r *http.Request) view.Result[CityFormProps] {
	in := form.ParseCity(r)
	props.Input = &in

	city, err := in.Validate()
	if err != nil {
		props.Error = err.Error()
		return submitFailed(ctx, props, props.Error)
	}

	verb := "add"
	switch {
	case props.CityID != 0:
		verb = "update"
		err = c.backend.UpdateCity(ctx, props.CityID, city)
	case props.CountryID != 0:
		err = c.backend.AddCityToCountry(ctx, props.CountryID, city)
	default:
		return view.Err(props, view.ErrNotFound)
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msgf("%s city", verb)
		props.Error = "Failed to " + verb + " city: " + err.Error()
		return view.OK(props).Flash(view.FlashError, "Failed to "+verb+" city")
	}

	zerolog.Ctx(ctx).Info().Int64("city", props.CityID).Int64("country", props.CountryID).Msg("city saved")
	return view.Navigate[CityFormProps](routes.CityHome(props.CountryID))
}

// NationFormProps drives the add and edit nation form.
//
// Adding requires CountryID. Editing requires NationID; CountryID is then
// optional and only decides where Save and Cancel go.
type NationFormProps struct {
	NationID  int64             `hx:"nation,omitempty"`
	CountryID int64             `hx:"country,omitempty"`
	Input     *form.NationInput `hx:"-"`
	Error     string            `hx:"-"`
}

type NationForm struct {
	*view.Component[NationFormProps]
	backend Backend
}

func NewNationForm(b Backend) *NationForm {
	c := &NationForm{
		Component: view.New[NationFormProps]("nationform").Sensitive(),
		backend:   b,
	}
	c.Action("save", c.handleSave)
	c.Bind(c)
	return c
}

func (c *NationForm) Hydrate(ctx context.Context, props *NationFormProps) error {
	if props.Input != nil {
		return nil
	}
	props.Input = &form.NationInput{}
	if props.NationID == 0 {
		return nil
	}
	nation, err := c.backend.GetNation(ctx, props.NationID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("nation", props.NationID).Msg("prefill nation form")
		props.Error = "Failed to load nation data"
		return nil
	}
	in := form.NationInputFrom(nation)
	props.Input = &in
	return nil
}

func (c *NationForm) Render(ctx context.Context, props NationFormProps) templ.Component {
	title := "Add Nation"
	if props.NationID != 0 {
		title = "Edit Nation"
	}
	return render("nation_form", formView[form.NationInput]{
		Title: title,
		Input: *props.Input,
		Error: props.Error,
		Save: c.Call("save", NationFormProps{NationID: props.NationID, CountryID: props.CountryID}).
			Target("#nation-form").
			Indicator("#nation-form .htmx-indicator").
			HTML(),
		Cancel: routes.NationHome(props.CountryID),
	})
}

func (c *NationForm) handleSave(ctx context.Context, props NationFormProps, r *http.Request) view.Result[NationFormProps] {
	in := form.ParseNation(r)
	props.Input = &in

	nation, err := in.Validate()
	if err != nil {
		props.Error = err.Error()
		return submitFailed(ctx, props, props.Error)
	}

	verb := "add"
	switch {
	case props.NationID != 0:
		verb = "update"
		err = c.backend.UpdateNation(ctx, props.NationID, nation)
	case props.CountryID != 0:
		err = c.backend.AddNationToCountry(ctx, props.CountryID, nation)
	default:
		return view.Err(props, view.ErrNotFound)
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msgf("%s nation", verb)
		props.Error = "Failed to " + verb + " nation: " + err.Error()
		return view.OK(props).Flash(view.FlashError, "Failed to "+verb+" nation")
	}

	zerolog.Ctx(ctx).Info().Int64("nation", props.NationID).Int64("country", props.CountryID).Msg("nation saved")
	return view.Navigate[NationFormProps](routes.NationHome(props.CountryID))
}
