package seriesmanager

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/heindl/caldav-go/icalendar"
	"github.com/heindl/caldav-go/icalendar/components"
	"github.com/heindl/caldav-go/icalendar/values"
)

// roundEventDuration is a rough race day length so rounds block out a
// sensible chunk of the calendar.
const roundEventDuration = 6 * time.Hour

type CalendarHandler struct {
	*BaseHandler

	store Store
}

func NewCalendarHandler(baseHandler *BaseHandler, store Store) *CalendarHandler {
	return &CalendarHandler{
		BaseHandler: baseHandler,
		store:       store,
	}
}

func (ch *CalendarHandler) buildICalEvent(round *Round) *components.Event {
	icalEvent := components.NewEvent(round.ID.String(), round.Date.UTC())

	icalEvent.Summary = round.Name

	if track, err := ch.store.FindTrackByID(round.TrackID.String()); err == nil {
		icalEvent.Summary = fmt.Sprintf("%s at %s", round.Name, track.Name)
		icalEvent.Location = values.NewLocation(fmt.Sprintf("%s, %s", track.City, track.Country))
	}

	if championship, err := ch.store.LoadChampionship(round.ChampionshipID.String()); err == nil {
		icalEvent.Description = fmt.Sprintf("%s, %d drivers in %d groups", championship.Name, len(round.Drivers), round.NumberOfGroups)
	}

	if config != nil && config.HTTP.BaseURL != "" {
		u, err := url.Parse(config.HTTP.BaseURL + "/rounds/" + round.ID.String())

		if err == nil {
			icalEvent.Url = values.NewUrl(*u)
		}
	}

	icalEvent.Duration = values.NewDuration(roundEventDuration)

	return icalEvent
}

func (ch *CalendarHandler) buildRoundsFeed(w io.Writer) error {
	rounds, err := ch.store.ListRounds()

	if err != nil {
		return err
	}

	cal := components.NewCalendar()

	for _, round := range rounds {
		if round.Date.IsZero() {
			continue
		}

		cal.Events = append(cal.Events, ch.buildICalEvent(round))
	}

	str, err := icalendar.Marshal(cal)

	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, str)

	return err
}

func (ch *CalendarHandler) allRoundsICal(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Add("Content-Disposition", "inline; filename=rounds.ics")

	if err := ch.buildRoundsFeed(w); err != nil {
		ch.respondError(w, r, err)
		return
	}
}
