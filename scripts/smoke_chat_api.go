package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"fluentko-be/internal/pkg/serverutils"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// Request helper
func sendRequest(baseURL, method, path, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// Turns wait on the AI provider, no client timeout.
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func step(baseURL, title, method, path, token string, body interface{}) []byte {
	color.Yellow("\n%s", title)
	resp, respBody, err := sendRequest(baseURL, method, path, token, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode >= 400 {
		color.Red("Status: %s", resp.Status)
	} else {
		color.Green("Status: %s", resp.Status)
	}
	prettyPrint(respBody)
	return respBody
}

func main() {
	baseURL := os.Getenv("SMOKE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000/api"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		color.Red("JWT_SECRET is required to sign a student token")
		os.Exit(1)
	}

	studentId := uuid.New()
	token, err := serverutils.SignToken(studentId, secret)
	if err != nil {
		color.Red("Failed to sign token: %v", err)
		os.Exit(1)
	}
	color.Cyan("🚀 Starting practice chat smoke test as student %s\n", studentId)

	body := step(baseURL, "1. Create Chat", http.MethodPost, "/chat/v1", token, map[string]string{
		"title":       "Cafe Order",
		"prompt":      "Order coffee",
		"difficulty":  "Beginner",
		"character":   "Barista",
	})

	var created serverutils.BaseResponse[struct {
		ChatId uint `json:"chat_id"`
	}]
	_ = json.Unmarshal(body, &created)
	if created.Data.ChatId == 0 {
		color.Red("No chat_id in create response, aborting")
		os.Exit(1)
	}
	chatPath := fmt.Sprintf("/chat/v1/%d", created.Data.ChatId)

	step(baseURL, "2. List Chats", http.MethodGet, "/chat/v1", token, nil)
	step(baseURL, "3. Send Turn", http.MethodPost, chatPath+"/turn", token, map[string]string{"message": "아메리카노 한 잔 주세요"})
	step(baseURL, "4. Change Background", http.MethodPut, chatPath+"/background", token, map[string]string{"background": "chat-bg2.png"})
	step(baseURL, "5. Show Chat", http.MethodGet, chatPath, token, nil)
	step(baseURL, "6. Delete Chat", http.MethodDelete, chatPath, token, nil)

	color.Green("\n✅ Smoke test finished")
}
