// Package cloud loads the AWS configuration shared by the S3 object store and
// the DynamoDB record store.
package cloud
