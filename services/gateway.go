package services

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/popaya/grocery-api/models"
)

// AuthorizeNetGateway talks to the Authorize.Net JSON API. It implements
// Gateway; everything beyond the request/response contract is the gateway's
// own business.
type AuthorizeNetGateway struct {
	client *resty.Client
}

func NewAuthorizeNetGateway() *AuthorizeNetGateway {
	baseURL := os.Getenv("AUTHORIZENET_API_URL")
	if baseURL == "" {
		baseURL = "https://apitest.authorize.net/xml/v1/request.api"
	}
	return &AuthorizeNetGateway{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
	}
}

type merchantAuth struct {
	Name           string `json:"name"`
	TransactionKey string `json:"transactionKey"`
}

type creditCard struct {
	CardNumber     string `json:"cardNumber"`
	ExpirationDate string `json:"expirationDate"`
	CardCode       string `json:"cardCode,omitempty"`
}

type transactionRequest struct {
	TransactionType string  `json:"transactionType"`
	Amount          string  `json:"amount"`
	Payment         payment `json:"payment"`
	RefTransID      string  `json:"refTransId,omitempty"`
}

type payment struct {
	CreditCard creditCard `json:"creditCard"`
}

type createTransactionRequest struct {
	MerchantAuthentication merchantAuth       `json:"merchantAuthentication"`
	TransactionRequest     transactionRequest `json:"transactionRequest"`
}

type transactionResponse struct {
	TransactionResponse struct {
		ResponseCode string `json:"responseCode"`
		TransID      string `json:"transId"`
		Errors       []struct {
			ErrorText string `json:"errorText"`
		} `json:"errors"`
	} `json:"transactionResponse"`
	Messages struct {
		ResultCode string `json:"resultCode"`
		Message    []struct {
			Text string `json:"text"`
		} `json:"message"`
	} `json:"messages"`
}

func (g *AuthorizeNetGateway) auth() merchantAuth {
	return merchantAuth{
		Name:           os.Getenv("AUTHORIZENET_LOGIN_ID"),
		TransactionKey: os.Getenv("AUTHORIZENET_TRANSACTION_KEY"),
	}
}

func (g *AuthorizeNetGateway) Charge(card CardDetails, amount float64) (*GatewayResult, error) {
	body := map[string]any{
		"createTransactionRequest": createTransactionRequest{
			MerchantAuthentication: g.auth(),
			TransactionRequest: transactionRequest{
				TransactionType: "authCaptureTransaction",
				Amount:          fmt.Sprintf("%.2f", amount),
				Payment: payment{CreditCard: creditCard{
					CardNumber:     card.CardNumber,
					ExpirationDate: card.ExpirationDate,
					CardCode:       card.CardCode,
				}},
			},
		},
	}
	return g.submit(body)
}

func (g *AuthorizeNetGateway) Refund(transactionID string, amount float64) (*GatewayResult, error) {
	body := map[string]any{
		"createTransactionRequest": createTransactionRequest{
			MerchantAuthentication: g.auth(),
			TransactionRequest: transactionRequest{
				TransactionType: "refundTransaction",
				Amount:          fmt.Sprintf("%.2f", amount),
				RefTransID:      transactionID,
			},
		},
	}
	result, err := g.submit(body)
	if err != nil {
		return nil, err
	}
	if result.Status == models.PaymentStatusCompleted {
		result.Status = models.PaymentStatusRefunded
	}
	return result, nil
}

type transactionDetailsResponse struct {
	Transaction struct {
		TransID           string  `json:"transId"`
		TransactionType   string  `json:"transactionType"`
		TransactionStatus string  `json:"transactionStatus"`
		AuthAmount        float64 `json:"authAmount"`
		SettleAmount      float64 `json:"settleAmount"`
		SubmitTimeUTC     string  `json:"submitTimeUTC"`
	} `json:"transaction"`
	Messages struct {
		ResultCode string `json:"resultCode"`
		Message    []struct {
			Text string `json:"text"`
		} `json:"message"`
	} `json:"messages"`
}

func (g *AuthorizeNetGateway) TransactionDetails(transactionID string) (*TransactionDetails, error) {
	body := map[string]any{
		"getTransactionDetailsRequest": map[string]any{
			"merchantAuthentication": g.auth(),
			"transId":                transactionID,
		},
	}

	resp, err := g.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post("")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var parsed transactionDetailsResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if parsed.Messages.ResultCode != "Ok" {
		msg := "transaction lookup failed"
		if len(parsed.Messages.Message) > 0 {
			msg = parsed.Messages.Message[0].Text
		}
		return nil, fmt.Errorf("gateway: %s", msg)
	}

	return &TransactionDetails{
		TransactionID: parsed.Transaction.TransID,
		Type:          parsed.Transaction.TransactionType,
		Status:        parsed.Transaction.TransactionStatus,
		AuthAmount:    parsed.Transaction.AuthAmount,
		SettleAmount:  parsed.Transaction.SettleAmount,
		SubmittedAt:   parsed.Transaction.SubmitTimeUTC,
	}, nil
}

func (g *AuthorizeNetGateway) submit(body map[string]any) (*GatewayResult, error) {
	resp, err := g.client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post("")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var parsed transactionResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}

	result := &GatewayResult{TransactionID: parsed.TransactionResponse.TransID}
	if parsed.Messages.ResultCode == "Ok" && parsed.TransactionResponse.ResponseCode == "1" {
		result.Status = models.PaymentStatusCompleted
		if len(parsed.Messages.Message) > 0 {
			result.Message = parsed.Messages.Message[0].Text
		}
		return result, nil
	}

	result.Status = models.PaymentStatusFailed
	if errs := parsed.TransactionResponse.Errors; len(errs) > 0 {
		result.Message = errs[0].ErrorText
	} else if len(parsed.Messages.Message) > 0 {
		result.Message = parsed.Messages.Message[0].Text
	}
	return result, nil
}
