// Package repositories holds the adapters to the external collaborators of
// the engine. The scoring core only ever sees their outputs (corpora set,
// offer matrix), never the storage behind them.
package repositories

type Repositories struct {
	Corpora *CorporaFileRepository
}

func NewRepositories(corporaFile string) Repositories {
	return Repositories{
		Corpora: NewCorporaFileRepository(corporaFile),
	}
}
