// Copyright 2023 The Riserctl Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agentserver

import (
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/net/context"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// tokenKey is the metadata key carrying the agent access token.
const tokenKey = "riserctl-token"

// checkToken compares the token offered in ctx's metadata against the stored
// bcrypt hash. A nil hash means no token was ever generated and every caller
// is admitted.
func checkToken(ctx context.Context, hash []byte) error {
	if hash == nil {
		return nil
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok || len(md[tokenKey]) == 0 {
		return status.Error(codes.Unauthenticated, "no access token offered")
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(md[tokenKey][0])); err != nil {
		return status.Error(codes.Unauthenticated, "access token rejected")
	}
	return nil
}

func unaryAuth(hash []byte) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler) (interface{}, error) {
		if err := checkToken(ctx, hash); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

func streamAuth(hash []byte) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo,
		handler grpc.StreamHandler) error {
		if err := checkToken(ss.Context(), hash); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}

// Dial connects to an agent's control plane. When token is non-empty every
// call carries it in the request metadata.
func Dial(addr, token string) (*grpc.ClientConn, error) {
	opts := []grpc.DialOption{grpc.WithInsecure()}
	if token != "" {
		opts = append(opts,
			grpc.WithUnaryInterceptor(func(ctx context.Context, method string,
				req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker,
				callOpts ...grpc.CallOption) error {
				ctx = metadata.AppendToOutgoingContext(ctx, tokenKey, token)
				return invoker(ctx, method, req, reply, cc, callOpts...)
			}),
			grpc.WithStreamInterceptor(func(ctx context.Context, desc *grpc.StreamDesc,
				cc *grpc.ClientConn, method string, streamer grpc.Streamer,
				callOpts ...grpc.CallOption) (grpc.ClientStream, error) {
				ctx = metadata.AppendToOutgoingContext(ctx, tokenKey, token)
				return streamer(ctx, desc, cc, method, callOpts...)
			}),
		)
	}
	return grpc.Dial(addr, opts...)
}
