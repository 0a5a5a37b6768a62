package engine

// Read-only selectors for the UI layer. Each returns a snapshot; the
// session entities themselves stay owned by the engine.

// Phase reports the current lifecycle phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.phase
}

// Location reports where the user is seated.
func (e *Engine) Location() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.location
}

// Config reports the current setup draft.
func (e *Engine) Config() SessionConfig {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.draft
}

// ActiveSession reports the running session, or nil outside the active
// phase.
func (e *Engine) ActiveSession() *ActiveSession {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return nil
	}

	sess := *e.active

	return &sess
}

// RemainingSeconds reports the time left on the running session, or zero
// outside the active phase.
func (e *Engine) RemainingSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return 0
	}

	return e.active.Remaining(e.now())
}

// CompletedSession reports the summary shown on the completion screen, or
// nil outside the complete phase.
func (e *Engine) CompletedSession() *CompletedSession {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.completed == nil {
		return nil
	}

	done := *e.completed

	return &done
}

// BreakSession reports the running break, or nil outside the break phase.
func (e *Engine) BreakSession() *BreakSession {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.breakSess == nil {
		return nil
	}

	brk := *e.breakSess

	return &brk
}

// AbandonConfirmationShowing reports whether the abandon confirmation is
// up.
func (e *Engine) AbandonConfirmationShowing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.abandonPrompt
}

// BreakSetupShowing reports whether the break length picker is up.
func (e *Engine) BreakSetupShowing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.breakSetup
}

// BreakDraftMinutes reports the pending break length.
func (e *Engine) BreakDraftMinutes() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.breakDraftMinutes
}
