package grpc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/alfagnish/supplychain-api/internal/models"
)

// Client is a typed client for the Records service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial creates a client for addr using an insecure transport.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, method string, in, out interface{}) error {
	return c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, in, out)
}

func (c *Client) list(ctx context.Context, method string, in interface{}, out interface{}) error {
	lv := new(structpb.ListValue)
	if err := c.invoke(ctx, method, in, lv); err != nil {
		return err
	}
	b, err := lv.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (c *Client) add(ctx context.Context, method string, rec interface{}) (string, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return "", err
	}
	delete(m, "id")
	in, err := structpb.NewStruct(m)
	if err != nil {
		return "", err
	}
	out := new(structpb.Value)
	if err := c.invoke(ctx, method, in, out); err != nil {
		return "", err
	}
	return out.GetStringValue(), nil
}

func keyStruct(kv ...string) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = structpb.NewStringValue(kv[i+1])
	}
	return &structpb.Struct{Fields: fields}
}

func (c *Client) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	err := c.list(ctx, "ListAccounts", &emptypb.Empty{}, &out)
	return out, err
}

func (c *Client) CheckAuth(ctx context.Context, username, password string) ([]models.Account, error) {
	var out []models.Account
	err := c.list(ctx, "CheckAuth", keyStruct("username", username, "password", password), &out)
	return out, err
}

func (c *Client) AddAccount(ctx context.Context, a models.Account) (string, error) {
	return c.add(ctx, "AddAccount", a)
}

func (c *Client) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	err := c.list(ctx, "ListProfiles", &emptypb.Empty{}, &out)
	return out, err
}

func (c *Client) GetProfile(ctx context.Context, username string) ([]models.Profile, error) {
	var out []models.Profile
	err := c.list(ctx, "GetProfile", keyStruct("username", username), &out)
	return out, err
}

func (c *Client) AddProfile(ctx context.Context, p models.Profile) (string, error) {
	return c.add(ctx, "AddProfile", p)
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	err := c.list(ctx, "ListProducts", &emptypb.Empty{}, &out)
	return out, err
}

func (c *Client) GetProduct(ctx context.Context, serialNumber string) ([]models.Product, error) {
	var out []models.Product
	err := c.list(ctx, "GetProduct", keyStruct("serialNumber", serialNumber), &out)
	return out, err
}

func (c *Client) AddProduct(ctx context.Context, p models.Product) (string, error) {
	return c.add(ctx, "AddProduct", p)
}
