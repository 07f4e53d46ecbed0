package prompt

import "sync"

// Scripted is a Prompter that replays canned answers in order. A prompt with
// no answer left returns ErrNotInteractive, like a Terminal without a TTY.
type Scripted struct {
	mu       sync.Mutex
	selects  []int
	texts    []string
	confirms []bool
	titles   []string
}

// NewScripted returns a Prompter with no answers queued.
func NewScripted() *Scripted {
	return &Scripted{}
}

// OnSelect queues answers for Select.
func (s *Scripted) OnSelect(idx ...int) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selects = append(s.selects, idx...)
	return s
}

// OnText queues answers for Text. An empty answer yields the default.
func (s *Scripted) OnText(answers ...string) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, answers...)
	return s
}

// OnConfirm queues answers for Confirm.
func (s *Scripted) OnConfirm(answers ...bool) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirms = append(s.confirms, answers...)
	return s
}

// Titles returns the titles of every prompt shown so far.
func (s *Scripted) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.titles))
	copy(out, s.titles)
	return out
}

// Select implements Prompter.
func (s *Scripted) Select(title string, options []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = append(s.titles, title)
	if len(s.selects) == 0 {
		return -1, ErrNotInteractive
	}
	idx := s.selects[0]
	s.selects = s.selects[1:]
	if idx < 0 || idx >= len(options) {
		return -1, ErrCancelled
	}
	return idx, nil
}

// Text implements Prompter.
func (s *Scripted) Text(title, defaultValue string, validate func(string) error) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = append(s.titles, title)
	if len(s.texts) == 0 {
		return "", ErrNotInteractive
	}
	val := s.texts[0]
	s.texts = s.texts[1:]
	if val == "" {
		val = defaultValue
	}
	if validate != nil {
		if err := validate(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

// Confirm implements Prompter.
func (s *Scripted) Confirm(title string, defaultValue bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = append(s.titles, title)
	if len(s.confirms) == 0 {
		return false, ErrNotInteractive
	}
	ans := s.confirms[0]
	s.confirms = s.confirms[1:]
	return ans, nil
}
