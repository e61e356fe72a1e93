package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"anket-backend/internal/survey"
)

func TestAppState(t *testing.T) {
	s := New()
	assert.Nil(t, s.Dataset())

	ds := survey.NewDataset("anket.csv", []string{"Soru 1"}, []survey.RawRow{
		{"Soru 1": survey.NumberCell(4)},
	})
	s.SetDataset(ds)
	assert.Same(t, ds, s.Dataset())

	s.Clear()
	assert.Nil(t, s.Dataset())
}

func TestAppStateConcurrentReads(t *testing.T) {
	s := New()
	s.SetDataset(survey.NewDataset("anket.csv", nil, nil))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Dataset()
			}
		}()
	}
	s.SetDataset(survey.NewDataset("anket2.csv", nil, nil))
	wg.Wait()
}
