package slot

import "github.com/visitas-angelim/booking-service/pkg/txmanager"

// DBExecutor интерфейс для работы с БД, поддерживает *sql.DB и *sql.Tx
type DBExecutor = txmanager.DBExecutor
