// Package erp provides the gateway to the ERP backend. The ERP exposes a
// remote-object RPC surface (authenticate + execute_kw) and is treated as a
// black box: this package only knows the generic call shape, never the
// transport details of individual models.
package erp

import (
	"context"
	"strings"
	"sync"

	"expodesk_backend/platform/apperr"
	"expodesk_backend/platform/config"
	"expodesk_backend/platform/logger"

	"github.com/kolo/xmlrpc"
)

// Executor is the generic call surface repositories depend on.
// Implementations resolve the session themselves; an authentication failure
// surfaces as an unauthorized error on the call.
type Executor interface {
	ExecuteKw(ctx context.Context, model, method string, args []interface{}, kw map[string]interface{}) (interface{}, error)
}

// Client is the XML-RPC ERP client.
type Client struct {
	common   *xmlrpc.Client
	object   *xmlrpc.Client
	database string
	username string
	password string
	log      *logger.Logger

	mu  sync.Mutex
	uid int64
}

// NewClient creates the ERP client. No timeout is configured on the
// transport: calls rely on transport defaults and are never retried.
func NewClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	base := strings.TrimRight(cfg.ERPURL, "/")

	common, err := xmlrpc.NewClient(base+"/xmlrpc/2/common", nil)
	if err != nil {
		return nil, err
	}
	object, err := xmlrpc.NewClient(base+"/xmlrpc/2/object", nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		common:   common,
		object:   object,
		database: cfg.ERPDatabase,
		username: cfg.ERPUsername,
		password: cfg.ERPPassword,
		log:      log,
	}, nil
}

// Authenticate resolves the ERP session id. The ERP returns a numeric uid on
// success and boolean false on bad credentials. The uid is cached; ERP
// sessions do not expire.
func (c *Client) Authenticate(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.uid != 0 {
		return c.uid, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var reply interface{}
	args := []interface{}{c.database, c.username, c.password, map[string]interface{}{}}
	if err := c.common.Call("authenticate", args, &reply); err != nil {
		c.log.RemoteCallError("erp", "authenticate", err)
		return 0, apperr.Upstream("ERP authentication unavailable", err)
	}

	uid, ok := AsID(reply)
	if !ok || uid == 0 {
		return 0, apperr.Unauthorized("ERP authentication failed")
	}

	c.uid = uid
	return uid, nil
}

// ExecuteKw invokes a method on an ERP model through the generic execute_kw
// entry point.
func (c *Client) ExecuteKw(ctx context.Context, model, method string, args []interface{}, kw map[string]interface{}) (interface{}, error) {
	uid, err := c.Authenticate(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if kw == nil {
		kw = map[string]interface{}{}
	}

	var reply interface{}
	callArgs := []interface{}{c.database, uid, c.password, model, method, args, kw}
	if err := c.object.Call("execute_kw", callArgs, &reply); err != nil {
		c.log.RemoteCallError("erp", model+"."+method, err)
		return nil, apperr.Upstream("ERP call failed: "+model+"."+method, err)
	}

	return reply, nil
}
