package archive

// InferenceScript return the sagemaker inference handler script embedded in
// every model package. Fixed content, the builder does not parse it.
func InferenceScript() string {
	return `import json
import pickle
import os
import numpy as np
from sagemaker_inference import content_types, decoder, default_inference_handler, encoder
from sagemaker_inference import errors

def model_fn(model_dir):
    """Load the model from disk"""
    model_path = os.path.join(model_dir, 'model.pkl')
    with open(model_path, 'rb') as f:
        model = pickle.load(f)
    return model

def input_fn(input_data, content_type):
    """Parse input data payload"""
    if content_type == content_types.JSON:
        input_data = json.loads(input_data)
    return input_data

def predict_fn(input_data, model):
    """Inference request"""
    return model.predict(input_data)

def output_fn(prediction, accept):
    """Format prediction output"""
    if accept == content_types.JSON:
        return json.dumps(prediction.tolist())
    return prediction
`
}
