package server_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab-portal/internal/client"
	"lab-portal/internal/model"
)

func TestHealthAndUnknownRoutes(t *testing.T) {
	a := newTestApp(t)

	a.run(t, []httpTest{
		{
			name:     "health",
			method:   http.MethodGet,
			path:     "/api/health",
			wantCode: http.StatusOK,
			wantData: []byte(`{"status":"ok"}`),
		},
		{
			name:     "unknown route",
			method:   http.MethodGet,
			path:     "/api/v1/nope",
			wantCode: http.StatusNotFound,
			wantData: []byte(`{"success":false,"message":"Route not found"}`),
		},
		{
			name:     "razorpay key",
			method:   http.MethodGet,
			path:     "/api/v1/order/getkey",
			wantCode: http.StatusOK,
			wantData: []byte(`{"razorpay_key_id":"rzp_test_key"}`),
		},
	})
}

func TestAuthFlow(t *testing.T) {
	a := newTestApp(t)

	code, _ := a.call(t, http.MethodPost, "/api/v1/checkout/user", map[string]string{
		"name": "Asha Rao", "email": "asha@example.com",
	})
	require.Equal(t, http.StatusCreated, code)

	a.run(t, []httpTest{
		{
			name:     "missing name",
			method:   http.MethodPost,
			path:     "/api/v1/auth/signin",
			body:     []byte(`{"email":"asha@example.com"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"success":false,"message":"Email and name are required"}`),
		},
		{
			name:     "unknown buyer",
			method:   http.MethodPost,
			path:     "/api/v1/auth/signin",
			body:     []byte(`{"email":"nobody@example.com","name":"Nobody"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"success":false,"message":"User not found. Please checkout first."}`),
		},
		{
			name:     "verify without params",
			method:   http.MethodGet,
			path:     "/api/v1/auth/verify",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"success":false,"message":"Invalid verification link"}`),
		},
		{
			name:     "verify without user id",
			method:   http.MethodGet,
			path:     "/api/v1/auth/verify?token=abc",
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"success":false,"message":"Invalid verification link"}`),
		},
		{
			name:     "me without session",
			method:   http.MethodGet,
			path:     "/api/v1/auth/me",
			wantCode: http.StatusUnauthorized,
		},
	})

	code, body := a.call(t, http.MethodPost, "/api/v1/auth/signin", map[string]string{
		"name": "asha rao", "email": "ASHA@example.com",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	require.Len(t, a.mail.Sent(), 1)

	link, err := url.Parse(str(body, "verificationLink"))
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/home", link.Path)
	token, userID := link.Query().Get("token"), link.Query().Get("userId")
	require.NotEmpty(t, token)

	code, body = a.call(t, http.MethodGet, "/api/v1/auth/verify?token=wrong&userId="+userID, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid verification link: Token mismatch", body["message"])

	code, body = a.call(t, http.MethodGet, "/api/v1/auth/verify?token="+token+"&userId=missing", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid verification link: User not found", body["message"])

	code, body = a.call(t, http.MethodGet, "/api/v1/auth/verify?token="+token+"&userId="+userID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Authentication successful", body["message"])
	assert.Equal(t, "asha@example.com", str(body, "user", "email"))
	session := str(body, "token")
	require.NotEmpty(t, session)

	// the link is single use
	code, body = a.call(t, http.MethodGet, "/api/v1/auth/verify?token="+token+"&userId="+userID, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid verification link: Token mismatch", body["message"])

	rec := a.do(http.MethodGet, "/api/v1/auth/me", nil, session)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"asha@example.com"`)
}

func TestRazorpayFlow(t *testing.T) {
	a := newTestApp(t)

	code, body := a.call(t, http.MethodPost, "/api/v1/order/create-order", map[string]any{
		"fullName": "Asha Rao",
		"email":    "asha@example.com",
		"orderItems": []map[string]any{
			{"id": "p1", "title": "Linux Lab", "price": 99.5, "quantity": 2, "accessDays": 30},
		},
	})
	require.Equal(t, http.StatusOK, code)
	rzpOrderID := str(body, "order", "id")
	require.Equal(t, "order_rzp_1", rzpOrderID)
	assert.Equal(t, float64(19900), body["order"].(map[string]any)["amount"])

	code, body = a.call(t, http.MethodPost, "/api/v1/order/verify-payment", map[string]string{
		"razorpay_order_id":   rzpOrderID,
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  "forged",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid signature", body["message"])

	code, body = a.call(t, http.MethodPost, "/api/v1/order/verify-payment", map[string]string{
		"razorpay_order_id":   "order_unknown",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  client.PaymentSignature(testKeySecret, "order_unknown", "pay_1"),
	})
	assert.Equal(t, http.StatusNotFound, code)

	verify := map[string]string{
		"razorpay_order_id":   rzpOrderID,
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  client.PaymentSignature(testKeySecret, rzpOrderID, "pay_1"),
	}
	for i := 0; i < 2; i++ {
		code, body = a.call(t, http.MethodPost, "/api/v1/order/verify-payment", verify)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "success", str(body, "order", "status"))
		assert.Equal(t, "paid", str(body, "order", "paymentDetails", "status"))
	}

	code, body = a.call(t, http.MethodGet, "/api/v1/order/paid-orders", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["orders"], 1)

	code, body = a.call(t, http.MethodGet, "/api/v1/checkout/users/purchases", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["userCount"])
	users := body["data"].([]any)
	buyer := users[0].(map[string]any)
	assert.Equal(t, "asha@example.com", buyer["email"])
	assert.Equal(t, float64(1), buyer["purchasedItemsCount"])
	assert.Equal(t, 199.0, buyer["totalAmount"])
}

func TestRazorpayCreateOrder_Invalid(t *testing.T) {
	a := newTestApp(t)

	code, body := a.call(t, http.MethodPost, "/api/v1/order/create-order", map[string]any{
		"fullName":   "Asha Rao",
		"email":      "not-an-email",
		"orderItems": []map[string]any{{"id": "p1", "price": 0, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Contains(t, body["errors"], "email")
	assert.Contains(t, body["errors"], "orderItems[0].price")
}

func TestCheckoutOrders(t *testing.T) {
	a := newTestApp(t)

	code, body := a.call(t, http.MethodPost, "/api/v1/checkout", map[string]any{
		"items": []map[string]any{{"product": "p1", "quantity": 1, "amount": 50}},
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "pending", str(body, "data", "status"))
	orderID := str(body, "data", "id")

	code, body = a.call(t, http.MethodPost, "/api/v1/checkout/"+orderID+"/products", map[string]any{
		"product": "p2", "quantity": 1, "amount": 25.5,
	})
	require.Equal(t, http.StatusOK, code)
	items := body["data"].(map[string]any)["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, 75.5, body["data"].(map[string]any)["totalAmount"])
	secondItem := items[1].(map[string]any)["id"].(string)

	a.run(t, []httpTest{
		{
			name:     "empty items",
			method:   http.MethodPost,
			path:     "/api/v1/checkout",
			body:     []byte(`{"items":[]}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "status flag missing",
			method:   http.MethodPatch,
			path:     "/api/v1/checkout/" + orderID + "/status",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "status on unknown order",
			method:   http.MethodPatch,
			path:     "/api/v1/checkout/missing/status",
			body:     []byte(`{"isSuccess":true}`),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "remove unknown item",
			method:   http.MethodDelete,
			path:     "/api/v1/checkout/" + orderID + "/products/missing",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "remove item",
			method:   http.MethodDelete,
			path:     "/api/v1/checkout/" + orderID + "/products/" + secondItem,
			wantCode: http.StatusOK,
		},
		{
			name:     "remove last item",
			method:   http.MethodDelete,
			path:     "/api/v1/checkout/" + orderID + "/products/" + items[0].(map[string]any)["id"].(string),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"success":false,"message":"Cannot remove the last item from an order"}`),
		},
		{
			name:     "mark failed",
			method:   http.MethodPatch,
			path:     "/api/v1/checkout/" + orderID + "/status",
			body:     []byte(`{"isSuccess":false}`),
			wantCode: http.StatusOK,
		},
	})

	var order model.Order
	require.NoError(t, a.db.First(&order, "id = ?", orderID).Error)
	assert.Equal(t, model.OrderFailed, order.Status)
	assert.Len(t, order.Items, 1)
}

func TestCheckoutUsers(t *testing.T) {
	a := newTestApp(t)

	code, body := a.call(t, http.MethodPost, "/api/v1/checkout", map[string]any{
		"items": []map[string]any{{"product": "p1", "title": "Linux Lab", "quantity": 1, "amount": 50, "accessPeriod": "30 days"}},
	})
	require.Equal(t, http.StatusCreated, code)
	orderID := str(body, "data", "id")

	code, body = a.call(t, http.MethodPost, "/api/v1/checkout/user", map[string]string{
		"name": "Asha", "email": "asha@example.com", "order": orderID,
	})
	require.Equal(t, http.StatusCreated, code)
	userID := str(body, "data", "id")

	code, body = a.call(t, http.MethodGet, "/api/v1/checkout/users/"+userID+"/orders", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["purchasedItemsCount"], "pending orders are not purchases")

	code, _ = a.call(t, http.MethodPatch, "/api/v1/checkout/"+orderID+"/status", map[string]bool{"isSuccess": true})
	require.Equal(t, http.StatusOK, code)

	code, body = a.call(t, http.MethodGet, "/api/v1/checkout/users/purchases/"+userID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), str2num(body, "data", "purchasedItemsCount"))
	assert.Equal(t, 50.0, str2num(body, "data", "totalAmount"))

	a.run(t, []httpTest{
		{
			name:     "update without fields",
			method:   http.MethodPatch,
			path:     "/api/v1/checkout/checkout-user/" + userID,
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "update unknown user",
			method:   http.MethodPatch,
			path:     "/api/v1/checkout/checkout-user/missing",
			body:     []byte(`{"name":"X"}`),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "purchases of unknown user",
			method:   http.MethodGet,
			path:     "/api/v1/checkout/users/purchases/missing",
			wantCode: http.StatusNotFound,
		},
	})

	code, body = a.call(t, http.MethodPatch, "/api/v1/checkout/checkout-user/"+userID, map[string]string{"name": "Asha Rao"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Asha Rao", str(body, "user", "name"))
}

func str2num(m map[string]any, keys ...string) float64 {
	var cur any = m
	for _, k := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return 0
		}
		cur = obj[k]
	}
	n, _ := cur.(float64)
	return n
}
