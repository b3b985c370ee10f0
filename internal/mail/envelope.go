// Package mail defines the email envelope and attachment shapes and the
// dispatcher that forwards composed messages to the transactional-mail
// provider.
package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrDelivery = errors.New("mail delivery failed")

// AddressList accepts either a single address or an array of addresses on
// the wire.
type AddressList []string

func (l *AddressList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = AddressList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("address list must be a string or an array of strings")
	}
	*l = AddressList(many)
	return nil
}

// Sender accepts either a bare address or an {email, name} object.
type Sender struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

func (s *Sender) UnmarshalJSON(data []byte) error {
	var addr string
	if err := json.Unmarshal(data, &addr); err == nil {
		s.Email = addr
		s.Name = ""
		return nil
	}
	type plain Sender
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("from must be an address or an {email, name} object")
	}
	*s = Sender(p)
	return nil
}

// Envelope is the caller-supplied delivery envelope. Subject and Text are
// filled by the assembler for business documents and by the caller for
// greeting cards.
type Envelope struct {
	To      AddressList `json:"to" validate:"required,min=1,dive,email"`
	From    Sender      `json:"from" validate:"required"`
	Subject string      `json:"subject"`
	Text    string      `json:"text"`
	CC      AddressList `json:"cc" validate:"omitempty,dive,email"`
	BCC     AddressList `json:"bcc" validate:"omitempty,dive,email"`
}

// DeduplicateAgainstTo drops every primary recipient from the cc and bcc
// sets so nobody receives the message twice. Comparison is
// case-insensitive.
func (e *Envelope) DeduplicateAgainstTo() {
	primary := make(map[string]struct{}, len(e.To))
	for _, to := range e.To {
		primary[strings.ToLower(to)] = struct{}{}
	}
	e.CC = withoutAddresses(e.CC, primary)
	e.BCC = withoutAddresses(e.BCC, primary)
}

func withoutAddresses(list AddressList, drop map[string]struct{}) AddressList {
	if len(list) == 0 {
		return list
	}
	kept := list[:0:0]
	for _, addr := range list {
		if _, dup := drop[strings.ToLower(addr)]; !dup {
			kept = append(kept, addr)
		}
	}
	return kept
}

// Attachment is one base64-encoded file of an AttachmentSet.
type Attachment struct {
	Filename    string
	Content     string // base64
	Type        string
	Disposition string
}

// Dispatcher hands a composed attachment set to the mail provider. No
// retry, no queuing — a transport failure propagates as ErrDelivery.
type Dispatcher interface {
	Send(ctx context.Context, env Envelope, attachments []Attachment) error
}
