package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lumenbank/lumen-bank/pkg/randompkg"
	"github.com/lumenbank/lumen-bank/pkg/tokenpkg"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	username := randompkg.Owner()

	testCases := []struct {
		name           string
		setupAuth      func(t *testing.T, r *http.Request) error
		wantStatusCode int
	}{
		{
			name: "OK",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, AuthTypeBearer, username, time.Minute)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "NoAuthorization",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "InvalidAuthorizationFormat",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, "", username, time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "UnsupportedAuthorizationType",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, "basic", username, time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "ExpiredToken",
			setupAuth: func(t *testing.T, r *http.Request) error {
				return AddAuthorization(r, tokenMaker, AuthTypeBearer, username, -time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			server := gin.New()

			authPath := "/auth"
			server.GET(
				authPath,
				AuthMiddleware(tokenMaker),
				func(gctx *gin.Context) {
					gctx.JSON(http.StatusOK, gin.H{})
				},
			)

			recorder := httptest.NewRecorder()

			request, err := http.NewRequest(http.MethodGet, authPath, nil)
			if err != nil {
				t.Fatalf("http.NewRequest(%v, %v, nil) returned error: %v", http.MethodGet, authPath, err)
			}

			if err := tc.setupAuth(t, request); err != nil {
				t.Fatalf("tc.setupAuth(t, request) returned error: %v", err)
			}

			server.ServeHTTP(recorder, request)

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("status code = %v, want %v", recorder.Code, tc.wantStatusCode)
			}
		})
	}
}
