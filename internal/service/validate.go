package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	billsplitv1 "github.com/mmynk/billsplit/pkg/api/billsplitv1"
)

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrUnknownAssignee = errors.New("item assigned to someone who is not a participant")
	ErrUnknownPayer    = errors.New("payer must be one of the diners")
	ErrAuthRequired    = errors.New("authentication required")
	ErrNotOwner        = errors.New("bill belongs to another user")
)

// Custom tags reported by the struct-level rules.
const (
	tagParticipant = "participant"
	tagPayer       = "payer"
	tagDinerIndex  = "diner_index"
	tagNotBlank    = "notblank"
	tagUniqueName  = "unique_name"
	tagUniqueID    = "unique_id"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so errors match what the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(validateCalculateBillRequest, billsplitv1.CalculateBillRequest{})
	v.RegisterStructValidation(validateBill, billsplitv1.Bill{})
	return v
}

// validateCalculateBillRequest checks that participants are non-blank and
// every assignee is a participant. Duplicates are caught by the unique tags.
func validateCalculateBillRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(billsplitv1.CalculateBillRequest)

	participants := make(map[string]bool, len(req.Participants))
	for i, p := range req.Participants {
		if strings.TrimSpace(p) == "" {
			sl.ReportError(p, fmt.Sprintf("participants[%d]", i), "Participants", tagNotBlank, "")
		}
		participants[p] = true
	}

	for i, item := range req.Items {
		for j, assignee := range item.AssignedTo {
			if !participants[assignee] {
				sl.ReportError(assignee, fmt.Sprintf("items[%d].assigned_to[%d]", i, j), "AssignedTo", tagParticipant, assignee)
			}
		}
	}
}

// validateBill checks the draft-level rules: named diners are unique, the
// payer is a named diner, dish IDs are unique within the bill and dish
// assignments point at existing diners. Blank diner names are allowed so
// half-filled drafts can be saved; blank dish IDs are assigned on save.
func validateBill(sl validator.StructLevel) {
	bill := sl.Current().Interface().(billsplitv1.Bill)

	named := make(map[string]bool, len(bill.Diners))
	for i, name := range bill.Diners {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if named[name] {
			sl.ReportError(name, fmt.Sprintf("diners[%d]", i), "Diners", tagUniqueName, name)
		}
		named[name] = true
	}

	if bill.PayerID != "" && !named[bill.PayerID] {
		sl.ReportError(bill.PayerID, "payer_id", "PayerID", tagPayer, bill.PayerID)
	}

	dishIDs := make(map[string]bool, len(bill.Dishes))
	for i, dish := range bill.Dishes {
		if dish.ID != "" {
			if dishIDs[dish.ID] {
				sl.ReportError(dish.ID, fmt.Sprintf("dishes[%d].id", i), "ID", tagUniqueID, dish.ID)
			}
			dishIDs[dish.ID] = true
		}
		for j, idx := range dish.Diners {
			if idx >= len(bill.Diners) {
				sl.ReportError(idx, fmt.Sprintf("dishes[%d].diners[%d]", i, j), "Diners", tagDinerIndex, fmt.Sprint(idx))
			}
		}
	}
}

// validateRequest validates msg and returns an InvalidArgument error
// describing every failed field.
func validateRequest(msg any) error {
	err := validate.Struct(msg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
	}

	sentinel := ErrInvalidRequest
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case tagParticipant:
			sentinel = ErrUnknownAssignee
		case tagPayer:
			sentinel = ErrUnknownPayer
		}
		msgs = append(msgs, describe(fe))
	}
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%w: %s", sentinel, strings.Join(msgs, "; ")))
}

func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	// Drop the message type name.
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}

	switch fe.Tag() {
	case "required":
		return path + " is required"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", path, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", path, fe.Param())
	case "unique":
		return path + " must not contain duplicates"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", path, fe.Param())
	case "email":
		return path + " must be a valid email address"
	case tagNotBlank:
		return path + " must not be blank"
	case tagParticipant:
		return fmt.Sprintf("%s: %q is not a participant", path, fe.Param())
	case tagPayer:
		return fmt.Sprintf("%s: %q is not a diner", path, fe.Param())
	case tagDinerIndex:
		return fmt.Sprintf("%s: no diner at index %s", path, fe.Param())
	case tagUniqueName, tagUniqueID:
		return fmt.Sprintf("%s: %q appears more than once", path, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", path, fe.Tag())
	}
}
