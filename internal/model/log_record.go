package model

import "fmt"

// LogRecord is one balance change of one account made by one transaction.
// Seq is assigned by the log on append and is zero before that.
type LogRecord struct {
	Seq           int64
	TransactionID int64
	AccountID     int64
	PreBalance    int64
	PostBalance   int64
}

func (r LogRecord) String() string {
	return fmt.Sprintf("%d %d %d %d", r.TransactionID, r.AccountID, r.PreBalance, r.PostBalance)
}
