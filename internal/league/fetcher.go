package league

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/draft-league/internal/airtable"
	"github.com/mauv0809/draft-league/internal/metrics"
)

const unknownStoreError = "Unknown error"

// pagedFetcher reads a whole table by following the store's offset cursor.
type pagedFetcher struct {
	client  airtable.Client
	metrics metrics.Metrics
}

// fetchAll returns every record of table in arrival order. Pages are read
// one after the other; the first failed page aborts the scan and nothing
// read so far is returned.
func (f *pagedFetcher) fetchAll(ctx context.Context, table string) ([]airtable.Record, error) {
	var (
		records []airtable.Record
		offset  string
		pages   int
	)
	for {
		log.Info("Retrieving data with offset", "table", table, "offset", offset)
		f.metrics.IncStoreRequests("list", table)

		resp, err := f.client.ListRecords(ctx, table, offset, nil)
		if err != nil {
			f.metrics.IncStoreFailures("list", table)
			return nil, raise(newError(KindCommunication, err, "%s", err.Error()))
		}
		if !resp.Success {
			f.metrics.IncStoreFailures("list", table)
			return nil, raise(storeError(resp.Err))
		}

		pages++
		records = append(records, resp.Records...)
		log.Info("Success! Continuing with offset", "table", table, "offset", resp.Offset, "records", len(resp.Records))
		if resp.Offset == "" {
			break
		}
		offset = resp.Offset
	}
	f.metrics.ObservePagesFetched(table, pages)
	return records, nil
}

// storeError converts a store-reported failure into a CommunicationError.
func storeError(apiErr *airtable.APIError) *Error {
	if apiErr == nil {
		return newError(KindCommunication, nil, unknownStoreError)
	}
	msg := apiErr.Message
	if msg == "" {
		msg = apiErr.Error()
	}
	return newError(KindCommunication, apiErr, "%s", msg)
}
