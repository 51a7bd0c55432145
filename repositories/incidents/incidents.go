package incidents

func New() *Impl {
	return &Impl{limit: MaxRecent}
}

// Append stores one formatted notification, evicting the oldest entry once
// the limit is reached. The tracker appends while the web handler reads, so
// mutation stays inside a short critical section.
func (repo *Impl) Append(notification string) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.recent = append(repo.recent, notification)
	if len(repo.recent) > repo.limit {
		repo.recent = repo.recent[1:]
	}
}

// Snapshot returns a copy of the buffer, oldest first. Callers can hold on
// to the slice without blocking appends.
func (repo *Impl) Snapshot() []string {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	snapshot := make([]string, len(repo.recent))
	copy(snapshot, repo.recent)
	return snapshot
}
