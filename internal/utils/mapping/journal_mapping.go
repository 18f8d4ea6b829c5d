package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:     d.LineID,
		VoucherID:  d.VoucherID,
		AccountID:  d.AccountID,
		Debit:      d.Debit,
		Credit:     d.Credit,
		LineDate:   d.Date,
		Narration:  d.Narration,
		IsReversed: d.IsReversed,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:     m.LineID,
		VoucherID:  m.VoucherID,
		AccountID:  m.AccountID,
		Debit:      m.Debit,
		Credit:     m.Credit,
		Date:       m.LineDate,
		Narration:  m.Narration,
		IsReversed: m.IsReversed,
		CreatedAt:  m.CreatedAt,
	}
}
