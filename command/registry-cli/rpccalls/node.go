// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/registryd/rpc/node"
)

// GetNodeInfo - read the daemon status summary
func (client *Client) GetNodeInfo() (*node.InfoReply, error) {

	infoArgs := node.InfoArguments{}

	var reply node.InfoReply
	err := client.client.Call("Node.Info", &infoArgs, &reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Info Reply", reply)

	return &reply, nil
}
