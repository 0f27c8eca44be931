package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// LambdaHandler handles one API Gateway proxy integration.
type LambdaHandler func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

func corsHeaders(methods string) map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": methods,
		"Content-Type":                 "application/json",
	}
}

// lambdaEndpoint adds preflight handling and JSON encoding around fn.
func lambdaEndpoint(methods string, fn func(ctx context.Context, request events.APIGatewayProxyRequest) Reply) LambdaHandler {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		headers := corsHeaders(methods)

		// Handle CORS preflight
		if request.HTTPMethod == http.MethodOptions {
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusOK,
				Headers:    headers,
			}, nil
		}

		return toProxyResponse(headers, fn(ctx, request)), nil
	}
}

func toProxyResponse(headers map[string]string, reply Reply) events.APIGatewayProxyResponse {
	body, err := json.Marshal(reply.Body)
	if err != nil {
		return errorResponse(headers, http.StatusInternalServerError, "Failed to encode response")
	}
	return events.APIGatewayProxyResponse{
		StatusCode: reply.Status,
		Headers:    headers,
		Body:       string(body),
	}
}

func errorResponse(headers map[string]string, statusCode int, msg string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(MessageResponse{Success: false, Message: msg})
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}
}

// pathParam returns a decoded path parameter.
func pathParam(request events.APIGatewayProxyRequest, name string) string {
	value := request.PathParameters[name]
	if decoded, err := url.PathUnescape(value); err == nil {
		return decoded
	}
	return value
}

// HealthLambda serves GET /api/health.
func (a *API) HealthLambda() LambdaHandler {
	return lambdaEndpoint("GET, OPTIONS", func(ctx context.Context, _ events.APIGatewayProxyRequest) Reply {
		return a.Health(ctx)
	})
}

// LandlordsLambda serves landlord lookups and a landlord's submissions.
func (a *API) LandlordsLambda() LambdaHandler {
	return lambdaEndpoint("GET, OPTIONS", func(ctx context.Context, request events.APIGatewayProxyRequest) Reply {
		landlordID := pathParam(request, "landlordId")
		if landlordID == "" {
			return message(http.StatusBadRequest, "Landlord ID is required")
		}

		if submissionID := pathParam(request, "submissionId"); submissionID != "" {
			return a.LandlordSubmission(ctx, landlordID, submissionID)
		}
		if strings.HasSuffix(strings.TrimRight(request.Path, "/"), "/submissions") {
			return a.LandlordSubmissions(ctx, landlordID)
		}
		return a.GetLandlord(ctx, landlordID)
	})
}

// SubmissionsLambda serves POST /api/submissions.
func (a *API) SubmissionsLambda() LambdaHandler {
	return lambdaEndpoint("POST, OPTIONS", func(ctx context.Context, request events.APIGatewayProxyRequest) Reply {
		if request.HTTPMethod != "" && request.HTTPMethod != http.MethodPost {
			return message(http.StatusMethodNotAllowed, "Method not allowed")
		}

		body := []byte(request.Body)
		if request.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(request.Body)
			if err != nil {
				return message(http.StatusBadRequest, "Invalid request body")
			}
			body = decoded
		}
		return a.Submit(ctx, body)
	})
}

// TenantsLambda serves tenant summaries and history.
func (a *API) TenantsLambda() LambdaHandler {
	return lambdaEndpoint("GET, OPTIONS", func(ctx context.Context, request events.APIGatewayProxyRequest) Reply {
		email := pathParam(request, "email")
		if strings.HasSuffix(strings.TrimRight(request.Path, "/"), "/history") {
			return a.TenantHistory(ctx, email)
		}
		return a.GetTenant(ctx, email)
	})
}

// InitDatabaseLambda serves /api/init-database.
func (a *API) InitDatabaseLambda() LambdaHandler {
	return lambdaEndpoint("GET, POST, OPTIONS", func(ctx context.Context, _ events.APIGatewayProxyRequest) Reply {
		return a.InitDatabase(ctx)
	})
}
