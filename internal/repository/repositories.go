package repository

import (
	"github.com/deppfellow/colleague-finance-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	EEDM      *EEDMRepository
	Ethos     *EthosRepository
	Documents *DocumentRepository
}

// NewRepositories builds every repository over the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		EEDM:      NewEEDMRepository(s.DB.Pool),
		Ethos:     NewEthosRepository(s.DB.Pool),
		Documents: NewDocumentRepository(s.DB.Pool),
	}
}
