package steps

import (
	"fmt"
	"net/http"
	"time"
)

// The history is written by a background worker, so reads retry briefly
// until the expected status shows up.
func (fc *FeatureContext) iRequestTheLatestReading() error {
	return fc.eventually(func() (*http.Response, error) {
		return fc.monitor.GetLatestReading()
	})
}

func (fc *FeatureContext) iListTheLastReadings(limit int) error {
	fc.listLimit = limit
	return fc.eventually(func() (*http.Response, error) {
		return fc.monitor.ListReadings(limit)
	})
}

func (fc *FeatureContext) eventually(request func() (*http.Response, error)) error {
	deadline := time.Now().Add(2 * time.Second)
	for {
		response, err := request()
		if err != nil {
			return err
		}
		if response.StatusCode == http.StatusOK || time.Now().After(deadline) {
			fc.response = response
			return nil
		}
		response.Body.Close()
		time.Sleep(20 * time.Millisecond)
	}
}

func (fc *FeatureContext) theResponseStatusCodeShouldBe(code int) error {
	fc.require.Equal(code, fc.response.StatusCode)
	return nil
}

func (fc *FeatureContext) theReadingShouldHaveFieldEqualTo(field, expected string) error {
	var data map[string]any
	fc.require.NoError(fc.decodeBody(fc.response.Body, &data))
	fc.responseData = data

	fc.require.Contains(data, field)
	fc.require.Equal(expected, fmt.Sprint(data[field]))
	return nil
}

// theListShouldContainReadings lists again while the history worker is
// still catching up.
func (fc *FeatureContext) theListShouldContainReadings(count int) error {
	deadline := time.Now().Add(2 * time.Second)
	for {
		fc.require.Equal(http.StatusOK, fc.response.StatusCode)

		var body struct {
			Data []map[string]any `json:"data"`
		}
		fc.require.NoError(fc.decodeBody(fc.response.Body, &body))
		fc.responseList = body.Data

		if len(fc.responseList) >= count || time.Now().After(deadline) {
			break
		}
		time.Sleep(20 * time.Millisecond)

		response, err := fc.monitor.ListReadings(fc.listLimit)
		fc.require.NoError(err)
		fc.response = response
	}

	fc.require.Len(fc.responseList, count)
	return nil
}

func (fc *FeatureContext) readingOfTheListShouldHaveFieldEqualTo(index int, field, expected string) error {
	fc.require.Greater(len(fc.responseList), index-1)
	fc.require.Equal(expected, fmt.Sprint(fc.responseList[index-1][field]))
	return nil
}
