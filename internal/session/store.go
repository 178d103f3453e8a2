// Package session carries review drafts and flash messages across the
// submit-and-redirect cycle.
package session

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	cookieName = "movie-reviews-session"
	draftsKey  = "drafts"
)

// Draft is an unsent review kept after a failed submission.
type Draft struct {
	Rating  float64
	Message string
}

func init() {
	gob.Register(map[string]Draft{})
}

type Store struct {
	cookies *sessions.CookieStore
}

func NewStore(secret string, secure bool) *Store {
	cookies := sessions.NewCookieStore([]byte(secret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cookies}
}

func (s *Store) get(r *http.Request) (*sessions.Session, error) {
	sess, err := s.cookies.Get(r, cookieName)
	if err != nil {
		// Undecodable cookie: Get still hands back a fresh session.
		return sess, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

// SaveDraft remembers the form for movieID.
func (s *Store) SaveDraft(w http.ResponseWriter, r *http.Request, movieID string, d Draft) error {
	sess, _ := s.get(r)
	drafts := draftsOf(sess)
	drafts[movieID] = d
	sess.Values[draftsKey] = drafts
	return sess.Save(r, w)
}

// TakeDraft returns and forgets the draft for movieID.
func (s *Store) TakeDraft(w http.ResponseWriter, r *http.Request, movieID string) (Draft, bool, error) {
	sess, err := s.get(r)
	if err != nil {
		return Draft{}, false, err
	}
	drafts := draftsOf(sess)
	d, ok := drafts[movieID]
	if !ok {
		return Draft{}, false, nil
	}
	delete(drafts, movieID)
	sess.Values[draftsKey] = drafts
	return d, true, sess.Save(r, w)
}

// ClearDraft drops any draft for movieID.
func (s *Store) ClearDraft(w http.ResponseWriter, r *http.Request, movieID string) error {
	sess, _ := s.get(r)
	drafts := draftsOf(sess)
	if _, ok := drafts[movieID]; !ok {
		return nil
	}
	delete(drafts, movieID)
	sess.Values[draftsKey] = drafts
	return sess.Save(r, w)
}

func (s *Store) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	sess, _ := s.get(r)
	sess.AddFlash(msg)
	return sess.Save(r, w)
}

// Flash pops the first pending flash message, if any.
func (s *Store) Flash(w http.ResponseWriter, r *http.Request) (string, error) {
	sess, err := s.get(r)
	if err != nil {
		return "", err
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return "", nil
	}
	if err := sess.Save(r, w); err != nil {
		return "", err
	}
	msg, _ := flashes[0].(string)
	return msg, nil
}

func draftsOf(sess *sessions.Session) map[string]Draft {
	if drafts, ok := sess.Values[draftsKey].(map[string]Draft); ok {
		return drafts
	}
	return map[string]Draft{}
}
