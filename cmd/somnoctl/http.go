package main

import (
	"fmt"

	"github.com/go-resty/resty/v2"
)

func client() *resty.Client {
	return resty.New().
		SetBaseURL(apiFlag).
		SetHeader("Content-Type", "application/json")
}

func checked(resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s: %s", resp.Status(), resp.String())
	}
	return resp.Body(), nil
}

func doGet(path string) ([]byte, error) {
	return checked(client().R().Get(path))
}

func doPostJSON(path string, payload any) ([]byte, error) {
	return checked(client().R().SetBody(payload).Post(path))
}

func doPutJSON(path string, payload any) ([]byte, error) {
	return checked(client().R().SetBody(payload).Put(path))
}

func doDelete(path string) error {
	_, err := checked(client().R().Delete(path))
	return err
}
