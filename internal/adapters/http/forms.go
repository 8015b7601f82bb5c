package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/formutil"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/account"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/club"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/coach"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/lesson"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/money"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/domain/player"
)

// pathID reads a numeric path segment. ok is false for anything but a
// positive integer.
func pathID(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.PathValue(name))
	return n, err == nil && n > 0
}

// lenientFloat parses an optional number, reading unparseable input as blank.
func lenientFloat(form url.Values, key string) *float64 {
	f, err := formutil.OptionalFloat(form, key, key)
	if err != nil {
		return nil
	}
	return f
}

func registrationForm(form url.Values) account.Registration {
	return account.Registration{
		FullName:          formutil.String(form, "full_name"),
		Email:             formutil.String(form, "email"),
		Password:          form.Get("password"),
		Phone:             formutil.OptionalString(form, "phone"),
		AddressLine1:      formutil.OptionalString(form, "address_line1"),
		AddressLine2:      formutil.OptionalString(form, "address_line2"),
		City:              formutil.OptionalString(form, "city"),
		Postcode:          formutil.OptionalString(form, "postcode"),
		Country:           formutil.OptionalString(form, "country"),
		BankName:          formutil.OptionalString(form, "bank_name"),
		AccountHolderName: formutil.OptionalString(form, "account_holder_name"),
		SortCode:          formutil.OptionalString(form, "sort_code"),
		AccountNumber:     formutil.OptionalString(form, "account_number"),
		IBAN:              formutil.OptionalString(form, "iban"),
		SwiftBIC:          formutil.OptionalString(form, "swift_bic"),
		HourlyRate:        lenientFloat(form, "hourly_rate"),
	}
}

func clubForm(form url.Values) club.Input {
	return club.Input{
		Name:         formutil.String(form, "name"),
		Email:        formutil.OptionalString(form, "email"),
		Phone:        formutil.OptionalString(form, "phone"),
		AddressLine1: formutil.OptionalString(form, "address_line1"),
		AddressLine2: formutil.OptionalString(form, "address_line2"),
		City:         formutil.OptionalString(form, "city"),
		Postcode:     formutil.OptionalString(form, "postcode"),
		Country:      formutil.OptionalString(form, "country"),
	}
}

// clubFromInput rebuilds the displayed club from a rejected submission.
func clubFromInput(id int, in club.Input, courts []club.Court) club.Club {
	return club.Club{
		ID:           id,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		Postcode:     in.Postcode,
		Country:      in.Country,
		Courts:       courts,
	}
}

func playerForm(form url.Values) (player.Input, error) {
	coachIDs, err := formutil.IntList(form, "coach_ids", "Coaches")
	if err != nil {
		return player.Input{}, err
	}
	return player.Input{
		FullName:   formutil.String(form, "full_name"),
		Email:      formutil.OptionalString(form, "email"),
		Phone:      formutil.OptionalString(form, "phone"),
		BirthDate:  formutil.OptionalString(form, "birth_date"),
		SkillLevel: formutil.String(form, "skill_level"),
		Notes:      formutil.OptionalString(form, "notes"),
		Active:     formutil.Bool(form, "active"),
		CoachIDs:   coachIDs,
	}, nil
}

// playerFromInput rebuilds the displayed player from a rejected submission.
func playerFromInput(id int, in player.Input) player.Player {
	p := player.Player{
		ID:        id,
		FullName:  in.FullName,
		Email:     in.Email,
		Phone:     in.Phone,
		BirthDate: in.BirthDate,
		Notes:     in.Notes,
		Active:    in.Active,
	}
	if in.SkillLevel != "" {
		p.SkillLevel = &in.SkillLevel
	}
	for _, cid := range in.CoachIDs {
		p.Coaches = append(p.Coaches, player.CoachRef{ID: cid})
	}
	return p
}

// lessonForm reads the lesson form. On error the fields read so far are
// returned so the form can be redisplayed.
func lessonForm(form url.Values) (lesson.Input, error) {
	in := lesson.Input{
		Date:          formutil.String(form, "date"),
		StartTime:     formutil.String(form, "start_time"),
		EndTime:       formutil.String(form, "end_time"),
		Type:          formutil.String(form, "type"),
		Status:        formutil.String(form, "status"),
		PaymentStatus: formutil.String(form, "payment_status"),
		Notes:         formutil.OptionalString(form, "notes"),
		StrokeCodes:   formutil.StringList(form, "stroke_codes"),
	}
	var err error
	if in.CoachID, err = formutil.Int(form, "coach_id", "Coach"); err != nil {
		return in, err
	}
	if in.TotalAmount, err = formutil.Float(form, "total_amount", "Total amount"); err != nil {
		return in, err
	}
	if in.ClubReimbursementAmount, err = formutil.OptionalFloat(form, "club_reimbursement_amount", "Club reimbursement"); err != nil {
		return in, err
	}
	if in.ClubID, err = formutil.OptionalInt(form, "club_id", "Club"); err != nil {
		return in, err
	}
	if in.PlayerIDs, err = formutil.IntList(form, "player_ids", "Players"); err != nil {
		return in, err
	}
	if in.CourtIDs, err = formutil.IntList(form, "court_ids", "Courts"); err != nil {
		return in, err
	}
	return in, nil
}

// lessonFromInput rebuilds the displayed lesson from a rejected submission.
func lessonFromInput(id int, in lesson.Input) lesson.Lesson {
	l := lesson.Lesson{
		ID:            id,
		CoachID:       in.CoachID,
		ClubID:        in.ClubID,
		Date:          in.Date,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		TotalAmount:   money.Amount(in.TotalAmount),
		Type:          in.Type,
		Status:        in.Status,
		PaymentStatus: in.PaymentStatus,
		Notes:         in.Notes,
	}
	if in.ClubReimbursementAmount != nil {
		a := money.Amount(*in.ClubReimbursementAmount)
		l.ClubReimbursementAmount = &a
	}
	for _, pid := range in.PlayerIDs {
		l.Players = append(l.Players, player.Ref{ID: pid})
	}
	for _, code := range in.StrokeCodes {
		l.Strokes = append(l.Strokes, lesson.Stroke{Code: code})
	}
	for _, cid := range in.CourtIDs {
		l.Courts = append(l.Courts, club.Court{ID: cid})
	}
	return l
}

func coachSettingsForm(form url.Values) (coach.SettingsInput, error) {
	clubIDs, err := formutil.IntList(form, "club_ids", "Clubs")
	if err != nil {
		return coach.SettingsInput{}, err
	}
	defaultClub, err := formutil.OptionalInt(form, "default_club_id", "Default club")
	if err != nil {
		return coach.SettingsInput{}, err
	}
	return coach.SettingsInput{
		FullName:      formutil.OptionalString(form, "full_name"),
		Email:         formutil.OptionalString(form, "email"),
		Phone:         formutil.OptionalString(form, "phone"),
		HourlyRate:    lenientFloat(form, "hourly_rate"),
		AddressLine1:  formutil.OptionalString(form, "address_line1"),
		AddressLine2:  formutil.OptionalString(form, "address_line2"),
		City:          formutil.OptionalString(form, "city"),
		Postcode:      formutil.OptionalString(form, "postcode"),
		Country:       formutil.OptionalString(form, "country"),
		ClubIDs:       clubIDs,
		DefaultClubID: defaultClub,
	}, nil
}
