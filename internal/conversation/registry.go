// Package conversation holds the in-memory registry of active AI
// conversations: one private channel per user, each with an append-only,
// ordered message history. All state is process-lifetime only; a restart
// clears every conversation by design.
package conversation

import "sync"

// reservationPending is the channel value stored between TryOpen and Bind,
// while the external channel is still being created.
const reservationPending = ""

// Registry maps users to their single active conversation channel and
// channels to their histories. Every check-and-mutate step runs under one
// mutex, so two near-simultaneous opens from the same user cannot both
// succeed.
type Registry struct {
	owners    map[string]string // user ID -> channel ID ("" while pending)
	histories map[string][]Turn // channel ID -> ordered turns
	turnLocks map[string]*sync.Mutex
	mu        sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		owners:    make(map[string]string),
		histories: make(map[string][]Turn),
		turnLocks: make(map[string]*sync.Mutex),
	}
}

// TryOpen atomically reserves the conversation slot for userID. It fails
// with ErrAlreadyOpen if the user already owns a conversation or holds a
// pending reservation. The caller must either Bind the reservation to a
// channel once external creation succeeds, or Release it on failure.
func (r *Registry) TryOpen(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.owners[userID]; exists {
		return ErrAlreadyOpen
	}

	r.owners[userID] = reservationPending
	return nil
}

// Bind finalizes a pending reservation with the externally created channel
// and creates its empty history.
func (r *Registry) Bind(userID, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.owners[userID]
	if !exists || current != reservationPending {
		return ErrNoReservation
	}

	r.owners[userID] = channelID
	r.histories[channelID] = []Turn{}
	return nil
}

// Release drops an unbound reservation after external channel creation
// fails, so the user is not left as a ghost owner. Bound conversations are
// untouched; those go through Close.
func (r *Registry) Release(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owners[userID] == reservationPending {
		delete(r.owners, userID)
	}
}

// AppendUserTurn appends a user-authored turn to the channel's history.
func (r *Registry) AppendUserTurn(channelID, text string) error {
	return r.append(channelID, Turn{Role: RoleUser, Text: text})
}

// AppendModelTurn appends a model-authored turn to the channel's history.
func (r *Registry) AppendModelTurn(channelID, text string) error {
	return r.append(channelID, Turn{Role: RoleModel, Text: text})
}

func (r *Registry) append(channelID string, turn Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	history, exists := r.histories[channelID]
	if !exists {
		return ErrUnknownChannel
	}

	r.histories[channelID] = append(history, turn)
	return nil
}

// HistoryOf returns a snapshot copy of the channel's history in append
// order. The copy is safe to hand to the generative backend while other
// events keep appending.
func (r *Registry) HistoryOf(channelID string) ([]Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	history, exists := r.histories[channelID]
	if !exists {
		return nil, ErrUnknownChannel
	}

	snapshot := make([]Turn, len(history))
	copy(snapshot, history)
	return snapshot, nil
}

// Close removes both the owner mapping and the channel history in one
// critical section. It fails with ErrNotOwner unless (userID, channelID)
// matches the current mapping, which also rejects pending reservations and
// channels that were never registered.
func (r *Registry) Close(userID, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.owners[userID]
	if !exists || current == reservationPending || current != channelID {
		return ErrNotOwner
	}

	delete(r.owners, userID)
	delete(r.histories, channelID)
	delete(r.turnLocks, channelID)
	return nil
}

// ChannelOf returns the channel bound to the user's conversation, if any.
// Pending reservations report no channel.
func (r *Registry) ChannelOf(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	channelID, exists := r.owners[userID]
	if !exists || channelID == reservationPending {
		return "", false
	}
	return channelID, true
}

// HasConversation reports whether the user owns a conversation or holds a
// pending reservation.
func (r *Registry) HasConversation(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.owners[userID]
	return exists
}

// Owns reports whether userID's active conversation is channelID.
func (r *Registry) Owns(userID, channelID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	current, exists := r.owners[userID]
	return exists && current != reservationPending && current == channelID
}

// IsConversationChannel reports whether channelID hosts a registered
// conversation.
func (r *Registry) IsConversationChannel(channelID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.histories[channelID]
	return exists
}

// Len returns the number of conversations, pending reservations included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.owners)
}

// LockChannel serializes conversation turns for one channel: the router
// holds the returned unlock across append -> relay -> append so history
// order matches message arrival order even when generative calls overlap.
// Turns in different channels interleave freely. The unlock closes over the
// mutex instance itself, so it stays valid when Close reaps the lock entry
// while a turn is still in flight.
func (r *Registry) LockChannel(channelID string) (unlock func()) {
	lock := r.channelLock(channelID)
	lock.Lock()
	return lock.Unlock
}

func (r *Registry) channelLock(channelID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, exists := r.turnLocks[channelID]
	if !exists {
		lock = &sync.Mutex{}
		r.turnLocks[channelID] = lock
	}
	return lock
}
