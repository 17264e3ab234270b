package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/AlexAkulov/reportfox"
)

type Sender struct {
	Method  string
	URL     string
	Headers map[string]string
}

func (s *Sender) Start() error {
	if s.URL == "" {
		return fmt.Errorf("webhook url is empty")
	}
	if s.Method == "" {
		s.Method = "POST"
	}
	return nil
}

func (s *Sender) Stop() error {
	return nil
}

func (s *Sender) Send(comment reportfox.Comment) error {
	body, _ := json.Marshal(comment)

	req, err := http.NewRequest(s.Method, s.URL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if _, err = ioutil.ReadAll(resp.Body); err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook replied %s", resp.Status)
	}
	return nil
}
