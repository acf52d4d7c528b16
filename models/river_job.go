package models

// QcCompletedArgs is the payload of the notification job enqueued when a test
// list instance is completed.
type QcCompletedArgs struct {
	TestListInstanceId string `json:"test_list_instance_id"`
}

func (QcCompletedArgs) Kind() string { return "qc_completed" }
