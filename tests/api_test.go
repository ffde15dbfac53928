package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// These tests run against an already started server (see config/local.yaml).

const baseURL = "http://localhost:8080"

type SignupResponse struct {
	Token string `json:"token"`
}

type LoginResponse struct {
	Token   string  `json:"token"`
	Message string  `json:"message"`
	Orders  []Order `json:"orders"`
}

type Order struct {
	TokenNumber int `json:"tokenNumber"`
	Items       []struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	} `json:"items"`
	TotalAmount float64 `json:"totalAmount"`
}

type PlaceOrderResponse struct {
	Message     string `json:"message"`
	TokenNumber int    `json:"tokenNumber"`
}

type OrdersResponse struct {
	Message string  `json:"message"`
	Orders  []Order `json:"orders"`
}

// signupUser registers a fresh user and returns its session token.
func signupUser(t *testing.T, username, email, password string) string {
	reqBody := []byte(`{"username": "` + username + `", "email": "` + email + `", "password": "` + password + `"}`)
	resp, err := http.Post(baseURL+"/signup", "application/json", bytes.NewBuffer(reqBody))
	assert.NoError(t, err, "Signup request should not error")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode, "Expected 201 Created for valid signup")

	var signupResp SignupResponse
	err = json.NewDecoder(resp.Body).Decode(&signupResp)
	assert.NoError(t, err, "Decoding signup response should succeed")
	assert.NotEmpty(t, signupResp.Token, "Token should not be empty")
	return signupResp.Token
}

func freshEmail() (string, string) {
	n := rand.New(rand.NewSource(time.Now().UnixNano())).Intn(1_000_000)
	return fmt.Sprintf("user%d", n), fmt.Sprintf("user%d@test.com", n)
}

func authedPost(t *testing.T, token, path string, body []byte) *http.Response {
	req, err := http.NewRequest("POST", baseURL+path, bytes.NewBuffer(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{}
	resp, err := client.Do(req)
	assert.NoError(t, err)
	return resp
}

// full customer journey: signup, login, place two orders, read them back
func TestOrderFlow(t *testing.T) {
	username, email := freshEmail()
	token := signupUser(t, username, email, "testpass123")

	// login with no history
	loginBody := []byte(`{"email": "` + email + `", "password": "testpass123"}`)
	resp, err := http.Post(baseURL+"/login", "application/json", bytes.NewBuffer(loginBody))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp LoginResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	assert.Equal(t, "Welcome! You have no previous orders.", loginResp.Message)
	assert.Empty(t, loginResp.Orders)

	// first order gets token number 1
	orderBody := []byte(`{"items": [{"name": "Burger", "price": 5, "quantity": 2}], "totalAmount": 10}`)
	orderResp := authedPost(t, token, "/place-order", orderBody)
	defer orderResp.Body.Close()
	assert.Equal(t, http.StatusOK, orderResp.StatusCode)

	var placed PlaceOrderResponse
	assert.NoError(t, json.NewDecoder(orderResp.Body).Decode(&placed))
	assert.Equal(t, 1, placed.TokenNumber)

	// second order gets token number 2
	orderResp2 := authedPost(t, token, "/place-order", orderBody)
	defer orderResp2.Body.Close()
	assert.Equal(t, http.StatusOK, orderResp2.StatusCode)

	var placed2 PlaceOrderResponse
	assert.NoError(t, json.NewDecoder(orderResp2.Body).Decode(&placed2))
	assert.Equal(t, 2, placed2.TokenNumber)

	// history comes back in creation order
	listResp := authedPost(t, token, "/orders", nil)
	defer listResp.Body.Close()
	assert.Equal(t, http.StatusOK, listResp.StatusCode)

	var orders OrdersResponse
	assert.NoError(t, json.NewDecoder(listResp.Body).Decode(&orders))
	assert.Len(t, orders.Orders, 2)
	assert.Equal(t, 1, orders.Orders[0].TokenNumber)
	assert.Equal(t, 2, orders.Orders[1].TokenNumber)
}

func TestSignupDuplicate(t *testing.T) {
	username, email := freshEmail()
	signupUser(t, username, email, "testpass123")

	reqBody := []byte(`{"username": "` + username + `", "email": "` + email + `", "password": "testpass123"}`)
	resp, err := http.Post(baseURL+"/signup", "application/json", bytes.NewBuffer(reqBody))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "expected 400 for duplicate signup")
}

func TestLoginInvalidCredentials(t *testing.T) {
	username, email := freshEmail()
	signupUser(t, username, email, "testpass123")

	// wrong password and unknown email must be indistinguishable
	wrongPass := []byte(`{"email": "` + email + `", "password": "wrongpass1"}`)
	resp, err := http.Post(baseURL+"/login", "application/json", bytes.NewBuffer(wrongPass))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	unknownEmail := []byte(`{"email": "nobody-here@test.com", "password": "testpass123"}`)
	resp2, err := http.Post(baseURL+"/login", "application/json", bytes.NewBuffer(unknownEmail))
	assert.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestOrdersUnauthorized(t *testing.T) {
	resp, err := http.Post(baseURL+"/orders", "application/json", nil)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "expected 401 without a bearer token")
}

func TestContact(t *testing.T) {
	reqBody := []byte(`{"name": "alice", "email": "a@test.com", "message": "great burgers"}`)
	resp, err := http.Post(baseURL+"/contact", "application/json", bytes.NewBuffer(reqBody))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "expected 201 for contact submission")
}
